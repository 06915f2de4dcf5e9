package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pagedesk/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrTitleRequired = errors.New("page title is required")
	ErrSlugConflict  = errors.New("a page with this slug already exists")
	ErrInvalidStatus = errors.New("page status must be draft, published or archived")
)

// DomainSource supplies the domain settings used to derive page urls.
type DomainSource interface {
	DomainSettings() (DomainSettings, error)
}

// PageService wraps page related database operations.
type PageService struct {
	db      *gorm.DB
	domains DomainSource
}

// PageInput represents fields accepted when creating a page.
type PageInput struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	H1          string `json:"h1"`
	Content     string `json:"content"`
	Status      string `json:"status"`
	Author      string `json:"author"`
}

// PageUpdate is a partial update; nil fields are left unchanged.
type PageUpdate struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	H1          *string `json:"h1"`
	Content     *string `json:"content"`
	Status      *string `json:"status"`
	Author      *string `json:"author"`
}

// PageFilter describes filters for listing pages.
type PageFilter struct {
	Status string
	Search string
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB, domains DomainSource) *PageService {
	return &PageService{db: gdb, domains: domains}
}

// Create validates input and inserts a page. The slug check and the insert
// share one transaction.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	slug := strings.TrimSpace(input.Slug)
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = db.DefaultPageAuthor
	}

	page := db.Page{
		Title:       title,
		Slug:        slug,
		Description: input.Description,
		H1:          input.H1,
		Content:     input.Content,
		Status:      status,
		Author:      author,
		URL:         PageURL(s.domainSettings(), slug),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureSlugAvailable(tx, slug, ""); err != nil {
			return err
		}
		return tx.Create(&page).Error
	})
	if err != nil {
		return nil, translatePageError(err)
	}
	return &page, nil
}

// Update applies a partial update to an existing page.
func (s *PageService) Update(id string, patch PageUpdate) (*db.Page, error) {
	var domain DomainSettings
	if patch.Slug != nil {
		domain = s.domainSettings()
	}

	var page db.Page
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&page).Error; err != nil {
			return err
		}

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return ErrTitleRequired
			}
			page.Title = title
		}
		if patch.Slug != nil {
			slug := strings.TrimSpace(*patch.Slug)
			if err := ValidateSlug(slug); err != nil {
				return err
			}
			if slug != page.Slug {
				if err := ensureSlugAvailable(tx, slug, page.ID); err != nil {
					return err
				}
				page.Slug = slug
				page.URL = PageURL(domain, slug)
			}
		}
		if patch.Status != nil {
			status, err := normalizeStatus(*patch.Status)
			if err != nil {
				return err
			}
			page.Status = status
		}
		if patch.Description != nil {
			page.Description = *patch.Description
		}
		if patch.H1 != nil {
			page.H1 = *patch.H1
		}
		if patch.Content != nil {
			page.Content = *patch.Content
		}
		if patch.Author != nil {
			page.Author = strings.TrimSpace(*patch.Author)
			if page.Author == "" {
				page.Author = db.DefaultPageAuthor
			}
		}

		return tx.Save(&page).Error
	})
	if err != nil {
		return nil, translatePageError(err)
	}
	return &page, nil
}

// Get fetches a page by id.
func (s *PageService) Get(id string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("id = ?", id).First(&page).Error; err != nil {
		return nil, translatePageError(err)
	}
	return &page, nil
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, translatePageError(err)
	}
	return &page, nil
}

// List returns pages newest first.
func (s *PageService) List(filter PageFilter) ([]db.Page, error) {
	query := s.db.Model(&db.Page{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("(title LIKE ? OR slug LIKE ? OR description LIKE ?)", like, like, like)
	}

	var pages []db.Page
	if err := query.Order("created_at desc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Delete removes a page.
func (s *PageService) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&db.Page{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

// PersistViewCount stores a computed view count without touching updatedAt.
func (s *PageService) PersistViewCount(id string, views int) error {
	if views < 0 {
		views = 0
	}
	result := s.db.Model(&db.Page{}).Where("id = ?", id).UpdateColumn("views", views)
	if result.Error != nil {
		return fmt.Errorf("persist view count for %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

func (s *PageService) domainSettings() DomainSettings {
	if s.domains == nil {
		return DomainSettings{SSLEnabled: true}
	}
	settings, err := s.domains.DomainSettings()
	if err != nil {
		log.Printf("[settings] failed to load domain settings, using defaults: %v", err)
	}
	return settings
}

func ensureSlugAvailable(tx *gorm.DB, slug, excludeID string) error {
	query := tx.Model(&db.Page{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugConflict
	}
	return nil
}

func normalizeStatus(raw string) (string, error) {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return db.PageStatusDraft, nil
	}
	if !db.ValidPageStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func translatePageError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrPageNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrSlugConflict
	}
	return err
}
