package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/config"
	"github.com/pagedesk/internal/db"
	"github.com/pagedesk/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(db.Options{
		Type:         cfg.DatabaseType,
		Path:         cfg.DatabasePath,
		DSN:          cfg.DatabaseDSN,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
	}); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureUser(db.DB, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, router.Options{
		SessionSecret:        cfg.SessionSecret,
		SessionTTL:           cfg.SessionTTL,
		DefaultPrimaryDomain: cfg.DefaultPrimaryDomain,
	})
	log.Printf("pagedesk listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
