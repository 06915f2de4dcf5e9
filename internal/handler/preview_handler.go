package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/service"
)

type previewPayload struct {
	Content   string            `json:"content"`
	Location  string            `json:"location"`
	Scope     string            `json:"scope"`
	Overrides map[string]string `json:"overrides"`
}

type generatePayload struct {
	Locations []string `json:"locations"`
}

// ListLocations returns the built-in location presets.
func (a *API) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": service.LocationPresets()})
}

// PreviewContent runs the render pipeline over unsaved content and returns
// every stage. No page is read or counted.
func (a *API) PreviewContent(c *gin.Context) {
	var payload previewPayload
	if !bindJSON(c, &payload, "invalid preview payload") {
		return
	}

	stages, err := a.renderer.Preview(payload.Content, service.RenderOptions{
		Location:  payload.Location,
		Scope:     payload.Scope,
		Overrides: payload.Overrides,
	})
	if err != nil {
		respondServiceError(c, err, "failed to render preview")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variables":   stages.Variables,
		"substituted": stages.Substituted,
		"html":        stages.Converted,
		"unresolved":  stages.Unresolved,
	})
}

// GeneratePages renders a page once per requested location.
func (a *API) GeneratePages(c *gin.Context) {
	var payload generatePayload
	if c.Request.ContentLength != 0 && !bindJSON(c, &payload, "invalid generate payload") {
		return
	}

	pages, err := a.generated.Generate(trimmedParam(c, "id"), payload.Locations)
	if err != nil {
		respondServiceError(c, err, "failed to generate pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages, "total": len(pages)})
}

// ListGeneratedPages returns every generated page.
func (a *API) ListGeneratedPages(c *gin.Context) {
	pages, err := a.generated.List()
	if err != nil {
		respondServiceError(c, err, "failed to load generated pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages, "total": len(pages)})
}
