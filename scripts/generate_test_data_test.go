package main

import (
	"fmt"
	"testing"

	"github.com/pagedesk/internal/db"
	"github.com/pagedesk/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	settings := service.NewSiteSettingService(gdb, "example.com")

	first, err := seedDemoData(gdb, settings)
	if err != nil {
		t.Fatalf("seedDemoData returned error: %v", err)
	}
	if first.variables != len(demoVariables) || first.pages != len(demoPages) {
		t.Fatalf("unexpected first run counts: %+v", first)
	}

	second, err := seedDemoData(gdb, settings)
	if err != nil {
		t.Fatalf("second seedDemoData returned error: %v", err)
	}
	if second.variables != 0 || second.pages != 0 {
		t.Fatalf("expected second run to skip existing rows, got %+v", second)
	}
}

func TestSeededPageRendersWithoutGaps(t *testing.T) {
	gdb := setupSeedTestDB(t)
	settings := service.NewSiteSettingService(gdb, "example.com")
	if _, err := seedDemoData(gdb, settings); err != nil {
		t.Fatalf("seedDemoData returned error: %v", err)
	}

	renderer := service.NewRenderService(service.NewPageService(gdb, settings), service.NewVariableService(gdb), settings)
	result, err := renderer.RenderBySlug("devops-certification-training", service.RenderOptions{Location: "London", RequirePublished: true})
	if err != nil {
		t.Fatalf("RenderBySlug returned error: %v", err)
	}
	if len(result.Document.Unresolved) != 0 {
		t.Fatalf("expected every marker to resolve under a location preset, got %v", result.Document.Unresolved)
	}
	if result.Document.Title != "DevOps Certification Training in London" {
		t.Fatalf("unexpected title %q", result.Document.Title)
	}
}
