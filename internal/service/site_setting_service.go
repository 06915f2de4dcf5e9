package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pagedesk/internal/db"
	"github.com/pagedesk/internal/render"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSettingNotFound   = errors.New("setting not found")
	ErrSettingKeyMissing = errors.New("setting key is required")
	ErrInvalidSetting    = errors.New("setting value must be valid JSON")
)

// DomainSettings 描述主域名及 URL 生成规则。
type DomainSettings struct {
	PrimaryDomain string   `json:"primaryDomain"`
	CustomDomains []string `json:"customDomains"`
	SSLEnabled    bool     `json:"sslEnabled"`
	WWWRedirect   bool     `json:"wwwRedirect"`
}

// SiteSettings 描述站点品牌信息。
type SiteSettings struct {
	SiteName        string `json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	DefaultLanguage string `json:"defaultLanguage"`
	Timezone        string `json:"timezone"`
	ContactEmail    string `json:"contactEmail"`
}

// SettingsUpdate carries the groups to save; nil groups are left untouched.
type SettingsUpdate struct {
	DomainSettings *DomainSettings `json:"domainSettings"`
	SiteSettings   *SiteSettings   `json:"siteSettings"`
}

// SiteSettingService 提供站点设置的读取与按 key upsert 能力。
type SiteSettingService struct {
	db            *gorm.DB
	defaultDomain string
}

// NewSiteSettingService 构造 SiteSettingService。defaultDomain 在未保存域名设置时使用。
func NewSiteSettingService(gdb *gorm.DB, defaultDomain string) *SiteSettingService {
	return &SiteSettingService{db: gdb, defaultDomain: normalizeDomain(defaultDomain)}
}

// Get returns the raw payload stored under key.
func (s *SiteSettingService) Get(key string) (datatypes.JSON, error) {
	var setting db.SiteSetting
	if err := s.db.Where(keyIs(strings.TrimSpace(key))).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("load setting %s: %w", key, err)
	}
	return setting.Value, nil
}

// All returns every stored payload keyed by setting key.
func (s *SiteSettingService) All() (map[string]json.RawMessage, error) {
	var records []db.SiteSetting
	if err := s.db.Order(clause.OrderByColumn{Column: keyColumn}).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	result := make(map[string]json.RawMessage, len(records))
	for _, record := range records {
		result[record.Key] = json.RawMessage(record.Value)
	}
	return result, nil
}

// Upsert stores value under key, creating the row when absent. Writing the
// domain group also refreshes every page url.
func (s *SiteSettingService) Upsert(key string, value json.RawMessage) (*db.SiteSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSettingKeyMissing
	}
	if !json.Valid(value) {
		return nil, ErrInvalidSetting
	}

	// typed groups go through Update so they are sanitized before storage
	switch key {
	case db.SettingKeyDomain:
		domain := s.defaultDomainSettings()
		if err := json.Unmarshal(value, &domain); err != nil {
			return nil, ErrInvalidSetting
		}
		if _, err := s.Update(SettingsUpdate{DomainSettings: &domain}); err != nil {
			return nil, err
		}
	case db.SettingKeySite:
		site := defaultSiteSettings()
		if err := json.Unmarshal(value, &site); err != nil {
			return nil, ErrInvalidSetting
		}
		if _, err := s.Update(SettingsUpdate{SiteSettings: &site}); err != nil {
			return nil, err
		}
	default:
		if err := upsertSetting(s.db, key, value); err != nil {
			return nil, err
		}
	}

	var setting db.SiteSetting
	if err := s.db.Where(keyIs(key)).First(&setting).Error; err != nil {
		return nil, fmt.Errorf("reload setting %s: %w", key, err)
	}
	return &setting, nil
}

// DomainSettings 读取域名设置，如未设置将返回默认值。
func (s *SiteSettingService) DomainSettings() (DomainSettings, error) {
	result := s.defaultDomainSettings()
	raw, err := s.Get(db.SettingKeyDomain)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return result, nil
		}
		return result, err
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return s.defaultDomainSettings(), fmt.Errorf("decode domain settings: %w", err)
	}
	return sanitizeDomainSettings(result, s.defaultDomain), nil
}

// SiteSettings 读取站点设置，如未设置将返回默认值。
func (s *SiteSettingService) SiteSettings() (SiteSettings, error) {
	result := defaultSiteSettings()
	raw, err := s.Get(db.SettingKeySite)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return result, nil
		}
		return result, err
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return defaultSiteSettings(), fmt.Errorf("decode site settings: %w", err)
	}
	return sanitizeSiteSettings(result), nil
}

// Update 保存设置分组。保存域名设置时在同一事务内重新计算所有页面 URL。
func (s *SiteSettingService) Update(input SettingsUpdate) (SettingsUpdate, error) {
	var saved SettingsUpdate

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.DomainSettings != nil {
			domain := sanitizeDomainSettings(*input.DomainSettings, s.defaultDomain)
			payload, err := json.Marshal(domain)
			if err != nil {
				return err
			}
			if err := upsertSetting(tx, db.SettingKeyDomain, payload); err != nil {
				return err
			}
			if err := refreshPageURLs(tx, domain); err != nil {
				return err
			}
			saved.DomainSettings = &domain
		}

		if input.SiteSettings != nil {
			site := sanitizeSiteSettings(*input.SiteSettings)
			payload, err := json.Marshal(site)
			if err != nil {
				return err
			}
			if err := upsertSetting(tx, db.SettingKeySite, payload); err != nil {
				return err
			}
			saved.SiteSettings = &site
		}
		return nil
	})
	if err != nil {
		return SettingsUpdate{}, fmt.Errorf("update site settings: %w", err)
	}

	return saved, nil
}

// PageURL derives the public url of a page from the primary domain and slug.
func PageURL(domain DomainSettings, slug string) string {
	host := normalizeDomain(domain.PrimaryDomain)
	if host == "" {
		return "/" + slug
	}
	scheme := "https"
	if !domain.SSLEnabled {
		scheme = "http"
	}
	return scheme + "://" + host + "/" + slug
}

// keyColumn is reserved in MySQL, so conditions on it go through clause
// expressions that the dialector quotes.
var keyColumn = clause.Column{Name: "key"}

func keyIs(key string) clause.Eq {
	return clause.Eq{Column: keyColumn, Value: key}
}

func upsertSetting(tx *gorm.DB, key string, value []byte) error {
	setting := db.SiteSetting{Key: key, Value: datatypes.JSON(value)}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{keyColumn},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      datatypes.JSON(value),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func refreshPageURLs(tx *gorm.DB, domain DomainSettings) error {
	var pages []db.Page
	if err := tx.Select("id", "slug").Find(&pages).Error; err != nil {
		return fmt.Errorf("load pages for url refresh: %w", err)
	}
	for _, page := range pages {
		if err := tx.Model(&db.Page{}).
			Where("id = ?", page.ID).
			UpdateColumn("url", PageURL(domain, page.Slug)).Error; err != nil {
			return fmt.Errorf("refresh url for page %s: %w", page.ID, err)
		}
	}
	return nil
}

func (s *SiteSettingService) defaultDomainSettings() DomainSettings {
	return DomainSettings{
		PrimaryDomain: s.defaultDomain,
		CustomDomains: []string{},
		SSLEnabled:    true,
		WWWRedirect:   true,
	}
}

func defaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:        render.DefaultCompanyName,
		SiteDescription: "Professional Training and Certification Courses",
		DefaultLanguage: "English",
		Timezone:        "UTC",
		ContactEmail:    "",
	}
}

func sanitizeDomainSettings(input DomainSettings, fallback string) DomainSettings {
	out := input
	out.PrimaryDomain = normalizeDomain(input.PrimaryDomain)
	if out.PrimaryDomain == "" {
		out.PrimaryDomain = fallback
	}

	seen := make(map[string]struct{}, len(input.CustomDomains))
	custom := make([]string, 0, len(input.CustomDomains))
	for _, raw := range input.CustomDomains {
		domain := normalizeDomain(raw)
		if domain == "" || domain == out.PrimaryDomain {
			continue
		}
		if _, ok := seen[domain]; ok {
			continue
		}
		seen[domain] = struct{}{}
		custom = append(custom, domain)
	}
	out.CustomDomains = custom
	return out
}

func sanitizeSiteSettings(input SiteSettings) SiteSettings {
	defaults := defaultSiteSettings()
	out := SiteSettings{
		SiteName:        strings.TrimSpace(input.SiteName),
		SiteDescription: strings.TrimSpace(input.SiteDescription),
		DefaultLanguage: strings.TrimSpace(input.DefaultLanguage),
		Timezone:        strings.TrimSpace(input.Timezone),
		ContactEmail:    strings.TrimSpace(input.ContactEmail),
	}
	if out.SiteName == "" {
		out.SiteName = defaults.SiteName
	}
	if out.DefaultLanguage == "" {
		out.DefaultLanguage = defaults.DefaultLanguage
	}
	if out.Timezone == "" {
		out.Timezone = defaults.Timezone
	}
	return out
}

func normalizeDomain(raw string) string {
	domain := strings.ToLower(strings.TrimSpace(raw))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}
