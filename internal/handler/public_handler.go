package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/service"
)

func publicRenderOptions(c *gin.Context) service.RenderOptions {
	return service.RenderOptions{
		Location:         c.Query("location"),
		Scope:            c.Query("scope"),
		RequirePublished: true,
	}
}

// ShowPage serves a published page inside the public HTML frame.
func (a *API) ShowPage(c *gin.Context) {
	result, err := a.renderer.RenderBySlug(trimmedParam(c, "slug"), publicRenderOptions(c))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrPageNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrUnknownLocation):
			status = http.StatusBadRequest
		default:
			c.Error(err)
		}
		a.renderHTML(c, status, "error.html", gin.H{
			"title":  http.StatusText(status),
			"status": status,
		})
		return
	}
	if result.PersistErr != nil {
		c.Error(result.PersistErr)
	}

	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"title":       result.Document.Title,
		"heading":     result.Document.Heading,
		"description": result.Summary,
		"body":        template.HTML(a.sanitizer.Sanitize(result.Document.Body)),
		"url":         result.Page.URL,
		"author":      result.Page.Author,
		"updatedAt":   result.Page.UpdatedAt,
		"views":       result.Views,
	})
}

// RenderPage returns the rendered form of a published page as JSON.
func (a *API) RenderPage(c *gin.Context) {
	result, err := a.renderer.RenderBySlug(trimmedParam(c, "slug"), publicRenderOptions(c))
	if err != nil {
		respondServiceError(c, err, "failed to render page")
		return
	}
	if result.PersistErr != nil {
		c.Error(result.PersistErr)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          result.Page.ID,
		"slug":        result.Page.Slug,
		"url":         result.Page.URL,
		"title":       result.Document.Title,
		"h1":          result.Document.Heading,
		"description": result.Summary,
		"html":        a.sanitizer.Sanitize(result.Document.Body),
		"unresolved":  result.Document.Unresolved,
		"views":       result.Views,
	})
}
