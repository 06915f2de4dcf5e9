package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pagedesk/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	pages     *service.PageService
	settings  *service.SiteSettingService
	variables *service.VariableService
	renderer  *service.RenderService
	generated *service.GeneratedPageService
	sessions  *service.SessionService
	sanitizer *bluemonday.Policy
}

// Options configures the services behind the handlers.
type Options struct {
	DefaultPrimaryDomain string
	SessionTTL           time.Duration
}

type siteViewModel struct {
	Name        string
	Description string
	Language    string
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	settings := service.NewSiteSettingService(gdb, opts.DefaultPrimaryDomain)
	pages := service.NewPageService(gdb, settings)
	variables := service.NewVariableService(gdb)
	renderer := service.NewRenderService(pages, variables, settings)

	return &API{
		db:        gdb,
		pages:     pages,
		settings:  settings,
		variables: variables,
		renderer:  renderer,
		generated: service.NewGeneratedPageService(gdb, renderer),
		sessions:  service.NewSessionService(gdb, opts.SessionTTL),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (a *API) siteSettings(c *gin.Context) siteViewModel {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if view, ok := cached.(siteViewModel); ok {
			return view
		}
	}

	settings, err := a.settings.SiteSettings()
	if err != nil {
		c.Error(err)
	}

	view := siteViewModel{
		Name:        strings.TrimSpace(settings.SiteName),
		Description: strings.TrimSpace(settings.SiteDescription),
		Language:    strings.TrimSpace(settings.DefaultLanguage),
	}

	c.Set(siteSettingsContextKey, view)
	return view
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	view := a.siteSettings(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":        view.Name,
			"description": view.Description,
			"language":    view.Language,
		}
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = view.Name
	}

	c.HTML(status, template, payload)
}
