package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

var (
	ErrSlugRequired = errors.New("page slug is required")
	ErrInvalidSlug  = errors.New("slug may only contain lowercase letters, digits and hyphens")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateSlug checks the slug format only; uniqueness is checked at write time.
func ValidateSlug(slug string) error {
	if slug == "" {
		return ErrSlugRequired
	}
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// SlugFromTitle formats free text into a slug. Titles with nothing usable
// left after normalization yield "".
func SlugFromTitle(title string) string {
	normalized, err := slug.Normalize(strings.Join(strings.Fields(title), " "))
	if err != nil || ValidateSlug(normalized) != nil {
		return ""
	}
	return normalized
}
