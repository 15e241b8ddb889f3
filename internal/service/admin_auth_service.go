package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/catalogcms/backend/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService authenticates the single shared admin account and
// manages its server-side sessions. Implements auth.SessionValidator.
type AdminAuthService interface {
	Login(ctx context.Context, username, password string) (*model.AdminSession, error)
	Validate(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

// AdminCredentials holds the configured username and a bcrypt hash of the
// configured password.
type AdminCredentials struct {
	Username     string
	PasswordHash []byte
}

// NewAdminCredentials hashes a plaintext password unless a bcrypt hash is
// already supplied.
func NewAdminCredentials(username, password, passwordHash string) (AdminCredentials, error) {
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return AdminCredentials{}, err
		}
		return AdminCredentials{Username: username, PasswordHash: []byte(passwordHash)}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AdminCredentials{}, err
	}
	return AdminCredentials{Username: username, PasswordHash: hash}, nil
}

type adminAuthService struct {
	repo  repository.SessionRepository
	creds AdminCredentials
	ttl   time.Duration
	now   func() time.Time
}

// NewAdminAuthService creates an AdminAuthService. A non-positive ttl falls
// back to auth.SessionDuration.
func NewAdminAuthService(repo repository.SessionRepository, creds AdminCredentials, ttl time.Duration) AdminAuthService {
	if ttl <= 0 {
		ttl = auth.SessionDuration
	}
	return &adminAuthService{repo: repo, creds: creds, ttl: ttl, now: time.Now}
}

// Login checks the credentials and opens a session on success.
func (s *adminAuthService) Login(ctx context.Context, username, password string) (*model.AdminSession, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passErr := bcrypt.CompareHashAndPassword(s.creds.PasswordHash, []byte(password))
	if !userOK || passErr != nil {
		slog.Warn("admin login failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	session := &model.AdminSession{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	if n, err := s.repo.DeleteExpired(ctx, now); err != nil {
		slog.Error("purge expired sessions failed", "error", err)
	} else if n > 0 {
		slog.Debug("purged expired sessions", "count", n)
	}
	slog.Info("admin login", "session", token[:8])
	return session, nil
}

// Validate returns nil when token names a live session.
func (s *adminAuthService) Validate(ctx context.Context, token string) error {
	session, err := s.repo.FindByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidSession
	}
	if err != nil {
		return err
	}
	if session.Expired(s.now()) {
		_ = s.repo.DeleteByToken(ctx, token)
		return ErrSessionExpired
	}
	return nil
}

// Logout removes the session. Unknown tokens are not an error.
func (s *adminAuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteByToken(ctx, token)
}
