package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pagedesk/internal/db"
	"github.com/pagedesk/internal/render"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContextBuilder builds the render context for a set of options.
type ContextBuilder interface {
	Context(opts RenderOptions) (render.Context, error)
}

// GeneratedPageService renders a source page once per location and records
// the results.
type GeneratedPageService struct {
	db       *gorm.DB
	contexts ContextBuilder
	now      func() time.Time
}

// NewGeneratedPageService returns a new GeneratedPageService instance.
func NewGeneratedPageService(gdb *gorm.DB, contexts ContextBuilder) *GeneratedPageService {
	return &GeneratedPageService{db: gdb, contexts: contexts, now: time.Now}
}

// Generate renders the page under each named location and upserts one
// generated page per resulting url. With no locations every city preset is used.
func (s *GeneratedPageService) Generate(pageID string, locations []string) ([]db.GeneratedPage, error) {
	var source db.Page
	if err := s.db.Where("id = ?", pageID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	presets, err := resolvePresets(locations)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSpace(source.URL)
	if base == "" {
		base = "/" + source.Slug
	}
	published := s.now()

	batch := make([]db.GeneratedPage, 0, len(presets))
	for _, preset := range presets {
		ctx, err := s.contexts.Context(RenderOptions{Location: preset.Name})
		if err != nil {
			return nil, err
		}
		mapping := render.Resolve(ctx)

		batch = append(batch, db.GeneratedPage{
			Title:         render.Substitute(source.Title, mapping),
			URL:           base + "-" + strings.ToLower(preset.CityCode),
			Template:      source.Slug,
			Status:        db.PageStatusPublished,
			PublishedDate: &published,
			Countries:     []string{preset.Country},
			Cities:        []string{preset.City},
			Author:        source.Author,
			Category:      mapping[render.TokenCategoryName],
			GeneratedFrom: source.ID,
		})
	}

	urls := make([]string, 0, len(batch))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range batch {
			generated := batch[i]
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "url"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"title", "template", "status", "published_date", "countries",
					"cities", "author", "category", "generated_from", "last_modified",
				}),
			}).Create(&generated).Error; err != nil {
				return fmt.Errorf("save generated page %s: %w", generated.URL, err)
			}
			urls = append(urls, generated.URL)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var pages []db.GeneratedPage
	if err := s.db.Where("url IN ?", urls).Order("url asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// List returns generated pages, most recently modified first.
func (s *GeneratedPageService) List() ([]db.GeneratedPage, error) {
	var pages []db.GeneratedPage
	if err := s.db.Order("last_modified desc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func resolvePresets(names []string) ([]LocationPreset, error) {
	if len(names) == 0 {
		var cities []LocationPreset
		for _, preset := range locationPresets {
			if preset.Type == LocationCity {
				cities = append(cities, preset)
			}
		}
		return cities, nil
	}

	presets := make([]LocationPreset, 0, len(names))
	for _, name := range names {
		preset, err := LookupLocation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(name))
		}
		presets = append(presets, preset)
	}
	return presets, nil
}
