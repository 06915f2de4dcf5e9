package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/service"
)

// HealthCheck 提供监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

// GetSettings 返回域名与站点两组设置，未保存的分组使用默认值。
func (a *API) GetSettings(c *gin.Context) {
	domain, err := a.settings.DomainSettings()
	if err != nil {
		respondServiceError(c, err, "failed to load domain settings")
		return
	}
	site, err := a.settings.SiteSettings()
	if err != nil {
		respondServiceError(c, err, "failed to load site settings")
		return
	}

	c.JSON(http.StatusOK, service.SettingsUpdate{
		DomainSettings: &domain,
		SiteSettings:   &site,
	})
}

// UpdateSettings 保存提交的设置分组，并在域名变化时刷新页面 URL。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload service.SettingsUpdate
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}
	if payload.DomainSettings == nil && payload.SiteSettings == nil {
		respondError(c, http.StatusBadRequest, "domainSettings or siteSettings is required")
		return
	}

	saved, err := a.settings.Update(payload)
	if err != nil {
		respondServiceError(c, err, "failed to save settings")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetSetting 返回单个 key 的原始 JSON 值。
func (a *API) GetSetting(c *gin.Context) {
	key := trimmedParam(c, "key")
	value, err := a.settings.Get(key)
	if err != nil {
		respondServiceError(c, err, "failed to load setting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": json.RawMessage(value)})
}

// PutSetting 以 upsert 方式写入单个 key。
func (a *API) PutSetting(c *gin.Context) {
	var payload struct {
		Value json.RawMessage `json:"value"`
	}
	if !bindJSON(c, &payload, "invalid setting payload") {
		return
	}

	setting, err := a.settings.Upsert(trimmedParam(c, "key"), payload.Value)
	if err != nil {
		respondServiceError(c, err, "failed to save setting")
		return
	}
	c.JSON(http.StatusOK, setting)
}
