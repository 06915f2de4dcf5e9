package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DynamicVariable is an operator-managed substitution source. Key holds the
// literal marker, e.g. "{{category_name}}". An empty Scope means global.
type DynamicVariable struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Key         string    `gorm:"size:120;not null;uniqueIndex:idx_variable_key_scope" json:"key"`
	Scope       string    `gorm:"size:120;not null;default:'';uniqueIndex:idx_variable_key_scope" json:"scope"`
	Name        string    `json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:50;index" json:"category"`
	Value       string    `gorm:"type:text" json:"value"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the opaque identifier.
func (v *DynamicVariable) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// IsGlobal reports whether the variable applies to every render.
func (v *DynamicVariable) IsGlobal() bool {
	return strings.TrimSpace(v.Scope) == ""
}
