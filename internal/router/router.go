package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/handler"
	"github.com/pagedesk/internal/view"
	"gorm.io/gorm"
)

const sessionCookieName = "pagedesk_session"

// Options 汇总路由层需要的配置。
type Options struct {
	SessionSecret        string
	SessionTTL           time.Duration
	DefaultPrimaryDomain string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, opts Options) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	r.SetHTMLTemplate(template.Must(view.Templates()))

	api := handler.NewAPI(gdb, handler.Options{
		DefaultPrimaryDomain: opts.DefaultPrimaryDomain,
		SessionTTL:           opts.SessionTTL,
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/healthz", api.HealthCheck)

	// 公开页面
	r.GET("/p/:slug", api.ShowPage)
	r.GET("/api/pages/:slug/render", api.RenderPage)

	// 后台管理 API
	admin := r.Group("/admin/api")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("/pages", api.ListPages)
			auth.POST("/pages", api.CreatePage)
			auth.GET("/pages/:id", api.GetPage)
			auth.PUT("/pages/:id", api.UpdatePage)
			auth.DELETE("/pages/:id", api.DeletePage)
			auth.POST("/pages/:id/generate", api.GeneratePages)
			auth.GET("/slugify", api.SuggestSlug)

			auth.GET("/settings", api.GetSettings)
			auth.PUT("/settings", api.UpdateSettings)
			auth.GET("/settings/:key", api.GetSetting)
			auth.PUT("/settings/:key", api.PutSetting)

			auth.GET("/variables", api.ListVariables)
			auth.POST("/variables", api.CreateVariable)
			auth.PUT("/variables/:id", api.UpdateVariable)
			auth.DELETE("/variables/:id", api.DeleteVariable)

			auth.GET("/locations", api.ListLocations)
			auth.POST("/preview", api.PreviewContent)
			auth.GET("/generated-pages", api.ListGeneratedPages)
		}
	}

	return r
}
