package service

import (
	"errors"
	"testing"

	"github.com/pagedesk/internal/db"
)

func setupGeneration(t *testing.T) (*GeneratedPageService, *db.Page) {
	t.Helper()
	gdb := setupServiceTestDB(t)
	settings := NewSiteSettingService(gdb, "example.com")
	pages := NewPageService(gdb, settings)
	variables := NewVariableService(gdb)
	renderer := NewRenderService(pages, variables, settings)

	if _, err := variables.Create(VariableInput{Key: "category_name", Value: "DevOps"}); err != nil {
		t.Fatalf("failed to seed variable: %v", err)
	}
	page, err := pages.Create(PageInput{Title: "{{category_name}} Courses in {{city}}", Slug: "devops", Author: "Ops Team"})
	if err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}
	return NewGeneratedPageService(gdb, renderer), page
}

func TestGenerateCreatesPagePerLocation(t *testing.T) {
	svc, source := setupGeneration(t)

	generated, err := svc.Generate(source.ID, []string{"London", "Toronto"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(generated) != 2 {
		t.Fatalf("expected two generated pages, got %d", len(generated))
	}

	london := generated[0]
	if london.URL != "https://example.com/devops-lon" {
		t.Fatalf("unexpected url %q", london.URL)
	}
	if london.Title != "DevOps Courses in London" {
		t.Fatalf("unexpected title %q", london.Title)
	}
	if london.Category != "DevOps" || london.Author != "Ops Team" || london.Template != "devops" {
		t.Fatalf("unexpected metadata: %+v", london)
	}
	if len(london.Countries) != 1 || london.Countries[0] != "United Kingdom" {
		t.Fatalf("unexpected countries %v", london.Countries)
	}
	if london.GeneratedFrom != source.ID || london.Status != db.PageStatusPublished || london.PublishedDate == nil {
		t.Fatalf("unexpected generation fields: %+v", london)
	}
}

func TestGenerateUpsertsByURL(t *testing.T) {
	svc, source := setupGeneration(t)

	if _, err := svc.Generate(source.ID, []string{"London"}); err != nil {
		t.Fatalf("first Generate returned error: %v", err)
	}
	if _, err := svc.Generate(source.ID, []string{"United Kingdom"}); err != nil {
		t.Fatalf("second Generate returned error: %v", err)
	}

	all, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row for the shared url, got %d", len(all))
	}
}

func TestGenerateDefaultsToCityPresets(t *testing.T) {
	svc, source := setupGeneration(t)

	generated, err := svc.Generate(source.ID, nil)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(generated) != 10 {
		t.Fatalf("expected one page per city preset, got %d", len(generated))
	}
}

func TestGenerateErrors(t *testing.T) {
	svc, source := setupGeneration(t)

	if _, err := svc.Generate("missing", nil); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	if _, err := svc.Generate(source.ID, []string{"London", "Atlantis"}); !errors.Is(err, ErrUnknownLocation) {
		t.Fatalf("expected ErrUnknownLocation, got %v", err)
	}

	all, _ := svc.List()
	if len(all) != 0 {
		t.Fatalf("a failed batch must not store anything, got %d rows", len(all))
	}
}
