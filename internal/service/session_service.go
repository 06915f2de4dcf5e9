package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pagedesk/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired or not found")
)

const defaultSessionTTL = 24 * time.Hour

// SessionService 负责后台登录会话的创建、校验与注销。
type SessionService struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSessionService returns a new SessionService instance.
func NewSessionService(gdb *gorm.DB, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{db: gdb, ttl: ttl, now: time.Now}
}

// Login checks the credentials and records a new authenticated session.
func (s *SessionService) Login(username, password string) (*db.UserSession, error) {
	var user db.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session := db.UserSession{
		UserID:          strconv.FormatUint(uint64(user.ID), 10),
		Username:        user.Username,
		IsAuthenticated: true,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// Validate returns the session if it is authenticated and not expired.
func (s *SessionService) Validate(id string) (*db.UserSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSessionExpired
	}

	var session db.UserSession
	if err := s.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if !session.IsAuthenticated || !s.now().Before(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// Logout marks the session as no longer authenticated. Unknown ids are ignored.
func (s *SessionService) Logout(id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return s.db.Model(&db.UserSession{}).
		Where("id = ?", id).
		UpdateColumn("is_authenticated", false).Error
}
