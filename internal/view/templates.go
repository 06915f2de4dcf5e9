package view

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap 返回公共页面模板可用的函数。
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
	}
}

// Templates 解析内嵌的公共页面模板。
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

// FormatDate renders a timestamp for page footers; zero times render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("January 2, 2006")
}
