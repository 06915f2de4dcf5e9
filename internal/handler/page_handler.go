package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/service"
)

// ListPages returns pages filtered by ?status= and ?search=.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List(service.PageFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err, "failed to load pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages, "total": len(pages)})
}

// GetPage returns one page by id.
func (a *API) GetPage(c *gin.Context) {
	page, err := a.pages.Get(trimmedParam(c, "id"))
	if err != nil {
		respondServiceError(c, err, "failed to load page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreatePage stores a new page.
func (a *API) CreatePage(c *gin.Context) {
	var input service.PageInput
	if !bindJSON(c, &input, "invalid page payload") {
		return
	}

	page, err := a.pages.Create(input)
	if err != nil {
		respondServiceError(c, err, "failed to create page")
		return
	}
	c.JSON(http.StatusCreated, page)
}

// UpdatePage applies a partial update.
func (a *API) UpdatePage(c *gin.Context) {
	var patch service.PageUpdate
	if !bindJSON(c, &patch, "invalid page payload") {
		return
	}

	page, err := a.pages.Update(trimmedParam(c, "id"), patch)
	if err != nil {
		respondServiceError(c, err, "failed to update page")
		return
	}
	c.JSON(http.StatusOK, page)
}

// DeletePage removes a page.
func (a *API) DeletePage(c *gin.Context) {
	if err := a.pages.Delete(trimmedParam(c, "id")); err != nil {
		respondServiceError(c, err, "failed to delete page")
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestSlug formats ?title= into a slug for the editor.
func (a *API) SuggestSlug(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slug": service.SlugFromTitle(c.Query("title"))})
}
