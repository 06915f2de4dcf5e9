package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pagedesk/internal/db"
	"github.com/pagedesk/internal/render"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrVariableNotFound    = errors.New("variable not found")
	ErrVariableExists      = errors.New("a variable with this key already exists in this scope")
	ErrInvalidVariableName = errors.New("variable name may only contain letters, digits and underscores")
)

// VariableService manages operator-defined substitution variables.
type VariableService struct {
	db *gorm.DB
}

// VariableInput represents fields accepted when creating a variable.
// Key may be given with or without the {{ }} delimiters.
type VariableInput struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Scope       string `json:"scope"`
}

// VariableUpdate is a partial update; nil fields are left unchanged.
type VariableUpdate struct {
	Value       *string `json:"value"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Scope       *string `json:"scope"`
}

// VariableFilter narrows List results.
type VariableFilter struct {
	Scope    *string
	Category string
}

// NewVariableService returns a new VariableService instance.
func NewVariableService(gdb *gorm.DB) *VariableService {
	return &VariableService{db: gdb}
}

// Create stores a new variable; key and scope together must be unique.
func (s *VariableService) Create(input VariableInput) (*db.DynamicVariable, error) {
	name := render.TokenName(input.Key)
	if !render.ValidTokenName(name) {
		return nil, ErrInvalidVariableName
	}

	variable := db.DynamicVariable{
		Key:         render.Marker(name),
		Name:        name,
		Value:       input.Value,
		Description: strings.TrimSpace(input.Description),
		Category:    normalizeCategory(input.Category),
		Scope:       strings.TrimSpace(input.Scope),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureVariableAvailable(tx, variable.Key, variable.Scope, ""); err != nil {
			return err
		}
		return tx.Create(&variable).Error
	})
	if err != nil {
		return nil, translateVariableError(err)
	}
	return &variable, nil
}

// Update applies a partial update to a variable.
func (s *VariableService) Update(id string, patch VariableUpdate) (*db.DynamicVariable, error) {
	var variable db.DynamicVariable
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&variable).Error; err != nil {
			return err
		}

		if patch.Scope != nil {
			scope := strings.TrimSpace(*patch.Scope)
			if scope != variable.Scope {
				if err := ensureVariableAvailable(tx, variable.Key, scope, variable.ID); err != nil {
					return err
				}
				variable.Scope = scope
			}
		}
		if patch.Value != nil {
			variable.Value = *patch.Value
		}
		if patch.Description != nil {
			variable.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Category != nil {
			variable.Category = normalizeCategory(*patch.Category)
		}
		return tx.Save(&variable).Error
	})
	if err != nil {
		return nil, translateVariableError(err)
	}
	return &variable, nil
}

// Get fetches a variable by id.
func (s *VariableService) Get(id string) (*db.DynamicVariable, error) {
	var variable db.DynamicVariable
	if err := s.db.Where("id = ?", id).First(&variable).Error; err != nil {
		return nil, translateVariableError(err)
	}
	return &variable, nil
}

// Delete removes a variable.
func (s *VariableService) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&db.DynamicVariable{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVariableNotFound
	}
	return nil
}

// List returns variables ordered by category then key.
func (s *VariableService) List(filter VariableFilter) ([]db.DynamicVariable, error) {
	query := s.db.Model(&db.DynamicVariable{})
	if filter.Scope != nil {
		query = query.Where("scope = ?", strings.TrimSpace(*filter.Scope))
	}
	if category := normalizeCategory(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var variables []db.DynamicVariable
	if err := query.Order("category asc").Order(clause.OrderByColumn{Column: keyColumn}).Find(&variables).Error; err != nil {
		return nil, err
	}
	return variables, nil
}

// Globals returns the bare-name mapping of every global variable.
func (s *VariableService) Globals() (map[string]string, error) {
	return s.mapping("")
}

// Scoped returns the bare-name mapping of variables bound to scope. A blank
// scope yields an empty mapping.
func (s *VariableService) Scoped(scope string) (map[string]string, error) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return map[string]string{}, nil
	}
	return s.mapping(scope)
}

func (s *VariableService) mapping(scope string) (map[string]string, error) {
	var variables []db.DynamicVariable
	if err := s.db.Where("scope = ?", scope).Find(&variables).Error; err != nil {
		return nil, fmt.Errorf("load variables for scope %q: %w", scope, err)
	}

	out := make(map[string]string, len(variables))
	for _, variable := range variables {
		out[render.TokenName(variable.Key)] = variable.Value
	}
	return out, nil
}

func ensureVariableAvailable(tx *gorm.DB, key, scope, excludeID string) error {
	query := tx.Model(&db.DynamicVariable{}).
		Where(keyIs(key)).
		Where("scope = ?", scope)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrVariableExists
	}
	return nil
}

func normalizeCategory(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func translateVariableError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrVariableNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrVariableExists
	}
	return err
}
