package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/pagedesk/internal/config"
	"github.com/pagedesk/internal/db"
	"github.com/pagedesk/internal/service"
	"gorm.io/gorm"
)

// 演示数据生成器
func main() {
	cfg := config.Load()
	if err := db.Init(db.Options{
		Type:         cfg.DatabaseType,
		Path:         cfg.DatabasePath,
		DSN:          cfg.DatabaseDSN,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
	}); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	if err := db.EnsureUser(db.DB, "admin", "admin123"); err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	settings := service.NewSiteSettingService(db.DB, cfg.DefaultPrimaryDomain)
	created, err := seedDemoData(db.DB, settings)
	if err != nil {
		log.Fatal("生成演示数据失败:", err)
	}

	fmt.Println("演示数据生成完成！")
	fmt.Println("用户: admin (密码: admin123)")
	fmt.Printf("变量: %d 个, 页面: %d 个\n", created.variables, created.pages)
}

type demoVariable struct {
	key, value, description, category string
}

var demoVariables = []demoVariable{
	{"{{category_name}}", "DevOps", "Training category name", "course"},
	{"{{company_name}}", "Invensis Learning", "Company brand name", "brand"},
	{"{{course_count}}", "25+", "Number of courses in category", "course"},
	{"{{certification_body}}", "DevOps Institute", "Certifying organization", "course"},
	{"{{price}}", "2,499", "Course price in local currency", "pricing"},
	{"{{training_venues}}", "5 premium locations", "Number of training venues in city", "location"},
}

var demoPages = []service.PageInput{
	{
		Title:       "{{category_name}} Certification Training in {{city}}",
		Slug:        "devops-certification-training",
		Description: "{{category_name}} courses from {{company_name}} in {{city}}, {{country}}.",
		H1:          "{{category_name}} Training in {{city}}",
		Content: "**{{company_name}}** offers {{course_count}} *{{category_name}}* courses in {{city}}.\n" +
			"- Accredited by {{certification_body}}\n" +
			"- {{training_venues}} across {{metro_area}}\n" +
			"- From {{currency}}{{price}}\n" +
			"Call {{local_phone}} or [email us](mailto:{{local_email}}).",
		Status: db.PageStatusPublished,
		Author: "Content Team",
	},
	{
		Title:   "About {{company_name}}",
		Slug:    "about",
		Content: "{{company_name}} has trained professionals in {{course_count}} disciplines.",
		Status:  db.PageStatusDraft,
	},
}

type seedResult struct {
	variables int
	pages     int
}

// seedDemoData 写入演示变量与页面，已存在的记录会被跳过。
func seedDemoData(gdb *gorm.DB, domains service.DomainSource) (seedResult, error) {
	var result seedResult

	variables := service.NewVariableService(gdb)
	for _, item := range demoVariables {
		_, err := variables.Create(service.VariableInput{
			Key:         item.key,
			Value:       item.value,
			Description: item.description,
			Category:    item.category,
		})
		if errors.Is(err, service.ErrVariableExists) {
			continue
		}
		if err != nil {
			return result, fmt.Errorf("seed variable %s: %w", item.key, err)
		}
		result.variables++
	}

	pages := service.NewPageService(gdb, domains)
	for _, input := range demoPages {
		_, err := pages.Create(input)
		if errors.Is(err, service.ErrSlugConflict) {
			continue
		}
		if err != nil {
			return result, fmt.Errorf("seed page %s: %w", input.Slug, err)
		}
		result.pages++
	}

	return result, nil
}
