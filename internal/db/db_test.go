package db

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:db-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestInitCreatesSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pagedesk.db")
	if err := Init(Options{Type: TypeSQLite, Path: path}); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
		DB = nil
	})

	if !DB.Migrator().HasTable(&Page{}) || !DB.Migrator().HasTable(&SiteSetting{}) {
		t.Fatal("expected pages and site_settings tables to exist")
	}
}

func TestOpenRejectsUnknownType(t *testing.T) {
	if _, err := Open(Options{Type: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported store type")
	}
	for _, typ := range []string{TypePostgres, TypeMySQL} {
		if _, err := Open(Options{Type: typ}); err == nil {
			t.Fatalf("expected error for %s without DSN", typ)
		}
	}
}

func TestPageAssignsUUIDAndEnforcesSlugUniqueness(t *testing.T) {
	gdb := setupModelTestDB(t)

	page := Page{Title: "About", Slug: "about", Status: PageStatusDraft}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	if len(page.ID) != 36 {
		t.Fatalf("expected uuid identifier, got %q", page.ID)
	}

	dup := Page{Title: "About again", Slug: "about", Status: PageStatusDraft}
	if err := gdb.Create(&dup).Error; err == nil {
		t.Fatal("expected unique violation on duplicate slug")
	}
}

func TestGeneratedPageSerializesLocations(t *testing.T) {
	gdb := setupModelTestDB(t)

	generated := GeneratedPage{
		Title:     "DevOps in London",
		URL:       "https://example.com/devops-lon",
		Status:    PageStatusPublished,
		Countries: []string{"United Kingdom"},
		Cities:    []string{"London"},
	}
	if err := gdb.Create(&generated).Error; err != nil {
		t.Fatalf("failed to create generated page: %v", err)
	}

	var loaded GeneratedPage
	if err := gdb.First(&loaded, "id = ?", generated.ID).Error; err != nil {
		t.Fatalf("failed to load generated page: %v", err)
	}
	if len(loaded.Cities) != 1 || loaded.Cities[0] != "London" {
		t.Fatalf("unexpected cities %#v", loaded.Cities)
	}
}

func TestMigrateBackfillsEmptyStatus(t *testing.T) {
	gdb := setupModelTestDB(t)

	page := Page{Title: "Legacy", Slug: "legacy", Status: PageStatusDraft}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	if err := gdb.Model(&Page{}).Where("id = ?", page.ID).UpdateColumn("status", "").Error; err != nil {
		t.Fatalf("failed to clear status: %v", err)
	}

	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	var reloaded Page
	gdb.First(&reloaded, "id = ?", page.ID)
	if reloaded.Status != PageStatusDraft {
		t.Fatalf("expected status draft, got %q", reloaded.Status)
	}
}

func TestEnsureUserHashesPasswordOnce(t *testing.T) {
	gdb := setupModelTestDB(t)

	if err := EnsureUser(gdb, " admin ", "secret"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if err := EnsureUser(gdb, "admin", "other"); err != nil {
		t.Fatalf("EnsureUser second call returned error: %v", err)
	}

	var users []User
	gdb.Find(&users)
	if len(users) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(users))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secret")); err != nil {
		t.Fatalf("expected stored bcrypt hash of original password: %v", err)
	}
}

func TestValidPageStatus(t *testing.T) {
	for _, status := range []string{PageStatusDraft, PageStatusPublished, PageStatusArchived} {
		if !ValidPageStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if ValidPageStatus("deleted") || ValidPageStatus("") {
		t.Fatal("expected unknown statuses to be rejected")
	}
}
