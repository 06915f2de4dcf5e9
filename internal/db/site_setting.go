package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SiteSetting 存储按 key 分组的站点配置，value 为任意 JSON。
type SiteSetting struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Key       string         `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

// BeforeCreate assigns the opaque identifier.
func (s *SiteSetting) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

const (
	// SettingKeyDomain 表示域名与 URL 配置。
	SettingKeyDomain = "domainSettings"
	// SettingKeySite 表示站点品牌信息。
	SettingKeySite = "siteSettings"
)
