package service

import (
	"log"
	"strings"

	"github.com/pagedesk/internal/db"
	"github.com/pagedesk/internal/render"
)

// PageStore is the page side of the content store as seen by the renderer.
type PageStore interface {
	GetBySlug(slug string) (*db.Page, error)
	PersistViewCount(id string, views int) error
}

// VariableSource loads stored variables as bare-name mappings.
type VariableSource interface {
	Globals() (map[string]string, error)
	Scoped(scope string) (map[string]string, error)
}

// SiteInfoSource loads the site settings passed into every render.
type SiteInfoSource interface {
	SiteSettings() (SiteSettings, error)
}

// RenderOptions selects the render-scoped variable layer.
type RenderOptions struct {
	// Location names a built-in location preset.
	Location string `json:"location"`
	// Scope selects stored scoped variables. Defaults to Location.
	Scope string `json:"scope"`
	// Overrides are explicit values and win over everything else.
	Overrides map[string]string `json:"overrides"`
	// RequirePublished hides pages that are not published.
	RequirePublished bool `json:"-"`
}

// RenderResult is the outcome of rendering a stored page.
type RenderResult struct {
	Page     *db.Page
	Document render.Document
	Site     SiteSettings
	Views    int
	Summary  string
	// PersistErr is set when the view count could not be written back. The
	// document is still valid.
	PersistErr error
}

// RenderService loads a page with its variable snapshot, runs the render
// pipeline and writes the view count back.
type RenderService struct {
	pages     PageStore
	variables VariableSource
	site      SiteInfoSource
}

// NewRenderService returns a new RenderService instance.
func NewRenderService(pages PageStore, variables VariableSource, site SiteInfoSource) *RenderService {
	return &RenderService{pages: pages, variables: variables, site: site}
}

// RenderBySlug renders the page stored under slug. Only loading the page can
// fail; every other collaborator failure degrades to defaults.
func (s *RenderService) RenderBySlug(slug string, opts RenderOptions) (*RenderResult, error) {
	page, err := s.pages.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if opts.RequirePublished && !page.IsPublished() {
		return nil, ErrPageNotFound
	}

	ctx, site, err := s.context(opts)
	if err != nil {
		return nil, err
	}

	doc, views := render.Render(render.Page{
		Title:       page.Title,
		Heading:     page.H1,
		Description: page.Description,
		Content:     page.Content,
		Views:       page.Views,
	}, ctx)

	result := &RenderResult{
		Page:     page,
		Document: doc,
		Site:     site,
		Views:    views,
		Summary:  doc.Description,
	}
	if strings.TrimSpace(result.Summary) == "" {
		result.Summary = SummarizeContent(render.Substitute(page.Content, render.Resolve(ctx)), 0)
	}

	if err := s.pages.PersistViewCount(page.ID, views); err != nil {
		log.Printf("[render] failed to persist view count for page %s: %v", page.ID, err)
		result.PersistErr = err
	} else {
		page.Views = views
	}

	return result, nil
}

// Context builds the render context for opts: location preset, then scoped
// variables, then explicit overrides.
func (s *RenderService) Context(opts RenderOptions) (render.Context, error) {
	ctx, _, err := s.context(opts)
	return ctx, err
}

// Preview runs the pipeline over unsaved content without touching any page.
func (s *RenderService) Preview(raw string, opts RenderOptions) (render.Stages, error) {
	ctx, err := s.Context(opts)
	if err != nil {
		return render.Stages{}, err
	}
	return render.Pipeline(raw, ctx), nil
}

func (s *RenderService) context(opts RenderOptions) (render.Context, SiteSettings, error) {
	var location map[string]string
	if name := strings.TrimSpace(opts.Location); name != "" {
		preset, err := LookupLocation(name)
		if err != nil {
			return render.Context{}, SiteSettings{}, err
		}
		location = preset.Variables()
	}

	scope := strings.TrimSpace(opts.Scope)
	if scope == "" {
		scope = strings.TrimSpace(opts.Location)
	}

	var globals, scoped map[string]string
	if s.variables != nil {
		var err error
		if globals, err = s.variables.Globals(); err != nil {
			log.Printf("[render] failed to load global variables: %v", err)
			globals = nil
		}
		if scope != "" {
			if scoped, err = s.variables.Scoped(scope); err != nil {
				log.Printf("[render] failed to load variables for scope %q: %v", scope, err)
				scoped = nil
			}
		}
	}

	site := defaultSiteSettings()
	if s.site != nil {
		loaded, err := s.site.SiteSettings()
		if err != nil {
			log.Printf("[render] failed to load site settings, using defaults: %v", err)
		} else {
			site = loaded
		}
	}

	return render.Context{
		Site:      render.SiteInfo{Name: site.SiteName},
		Globals:   globals,
		Overrides: render.Merge(location, scoped, opts.Overrides),
	}, site, nil
}

