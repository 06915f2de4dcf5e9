package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page statuses.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
	PageStatusArchived  = "archived"
)

// DefaultPageAuthor is stored when a page is created without an author.
const DefaultPageAuthor = "Unknown"

// Page is a content document whose body may contain {{token}} markers.
type Page struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	H1          string    `gorm:"column:h1;type:text" json:"h1"`
	Content     string    `gorm:"type:text" json:"content"`
	Status      string    `gorm:"size:20;index;not null" json:"status"`
	Author      string    `json:"author"`
	Views       int       `gorm:"not null;default:0" json:"views"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the opaque identifier.
func (p *Page) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsPublished reports whether the page may be served publicly.
func (p *Page) IsPublished() bool {
	return p.Status == PageStatusPublished
}

// ValidPageStatus reports whether status is one of the page statuses.
func ValidPageStatus(status string) bool {
	switch status {
	case PageStatusDraft, PageStatusPublished, PageStatusArchived:
		return true
	}
	return false
}
