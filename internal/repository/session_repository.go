package repository

import (
	"context"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

// SessionRepository handles persistence for admin sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *model.AdminSession) error
	FindByToken(ctx context.Context, token string) (*model.AdminSession, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
