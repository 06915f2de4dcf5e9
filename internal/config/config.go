package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr           string
	Port                 string
	DatabaseType         string
	DatabasePath         string
	DatabaseDSN          string
	DatabaseMaxOpenConns int
	SessionSecret        string
	SessionTTL           time.Duration
	GinMode              string
	SuperRootUserName    string
	SuperRootPassword    string
	DefaultPrimaryDomain string
}

var envBindings = map[string]string{
	"port":                   "PORT",
	"listen_addr":            "LISTEN_ADDR",
	"database.type":          "DATABASE_TYPE",
	"database.path":          "DATABASE_PATH",
	"database.dsn":           "DATABASE_DSN",
	"database.max_open":      "DATABASE_MAX_OPEN_CONNS",
	"session.secret":         "SESSION_SECRET",
	"session.ttl_hours":      "SESSION_TTL_HOURS",
	"gin_mode":               "GIN_MODE",
	"super_root.username":    "SUPER_ROOT_USER_NAME",
	"super_root.password":    "SUPER_ROOT_PASSWORD",
	"default_primary_domain": "DEFAULT_PRIMARY_DOMAIN",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "pagedesk.db")
	v.SetDefault("database.max_open", 10)
	v.SetDefault("session.secret", "pagedesk-dev-secret")
	v.SetDefault("session.ttl_hours", 24)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("default_primary_domain", "example.com")
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	port := stringOr(v, "port", "8080")

	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	maxOpen := v.GetInt("database.max_open")
	if maxOpen <= 0 {
		maxOpen = 10
	}

	ttlHours := v.GetInt("session.ttl_hours")
	if ttlHours <= 0 {
		ttlHours = 24
	}

	return AppConfig{
		ListenAddr:           listenAddr,
		Port:                 port,
		DatabaseType:         strings.ToLower(stringOr(v, "database.type", "sqlite")),
		DatabasePath:         stringOr(v, "database.path", "pagedesk.db"),
		DatabaseDSN:          strings.TrimSpace(v.GetString("database.dsn")),
		DatabaseMaxOpenConns: maxOpen,
		SessionSecret:        stringOr(v, "session.secret", "pagedesk-dev-secret"),
		SessionTTL:           time.Duration(ttlHours) * time.Hour,
		GinMode:              stringOr(v, "gin_mode", "release"),
		SuperRootUserName:    strings.TrimSpace(v.GetString("super_root.username")),
		SuperRootPassword:    strings.TrimSpace(v.GetString("super_root.password")),
		DefaultPrimaryDomain: stringOr(v, "default_primary_domain", "example.com"),
	}
}

// stringOr treats a blank environment value the same as an unset one.
func stringOr(v *viper.Viper, key, fallback string) string {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return fallback
	}
	return value
}
