package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratedPage records a page rendered from a source page for one location.
type GeneratedPage struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	URL           string     `gorm:"not null;uniqueIndex" json:"url"`
	Template      string     `json:"template"`
	Status        string     `gorm:"size:20;not null" json:"status"`
	PublishedDate *time.Time `json:"publishedDate"`
	LastModified  time.Time  `gorm:"autoUpdateTime" json:"lastModified"`
	Views         int        `gorm:"not null;default:0" json:"views"`
	Countries     []string   `gorm:"serializer:json" json:"countries"`
	Cities        []string   `gorm:"serializer:json" json:"cities"`
	Author        string     `json:"author"`
	Category      string     `json:"category"`
	GeneratedFrom string     `gorm:"size:36;index" json:"generatedFrom"`
}

// BeforeCreate assigns the opaque identifier.
func (g *GeneratedPage) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
