package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pagedesk/internal/db"
)

func TestSessionLifecycle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	if err := db.EnsureUser(gdb, "admin", "secret"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	svc := NewSessionService(gdb, time.Hour)

	session, err := svc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.ID == "" || !session.IsAuthenticated || session.Username != "admin" {
		t.Fatalf("unexpected session: %+v", session)
	}

	if _, err := svc.Validate(session.ID); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if err := svc.Logout(session.ID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Validate(session.ID); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired after logout, got %v", err)
	}
}

func TestSessionRejectsBadCredentials(t *testing.T) {
	gdb := setupServiceTestDB(t)
	if err := db.EnsureUser(gdb, "admin", "secret"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	svc := NewSessionService(gdb, time.Hour)

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Validate(""); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired for blank id, got %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	gdb := setupServiceTestDB(t)
	if err := db.EnsureUser(gdb, "admin", "secret"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	svc := NewSessionService(gdb, time.Hour)
	start := time.Now()
	svc.now = func() time.Time { return start }

	session, err := svc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	if _, err := svc.Validate(session.ID); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
