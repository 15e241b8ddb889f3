package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

type sqliteSessionRepository struct {
	db *sql.DB
}

// NewSqliteSessionRepository returns a SQLite-backed SessionRepository.
func NewSqliteSessionRepository(s *Store) SessionRepository {
	return &sqliteSessionRepository{db: s.db}
}

func (r *sqliteSessionRepository) Create(ctx context.Context, s *model.AdminSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (token, created_at, expires_at) VALUES (?, ?, ?)`,
		s.Token, formatTime(s.CreatedAt), formatTime(s.ExpiresAt))
	return err
}

func (r *sqliteSessionRepository) FindByToken(ctx context.Context, token string) (*model.AdminSession, error) {
	var created, expires dbTime
	s := &model.AdminSession{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token, created_at, expires_at FROM admin_sessions WHERE token = ?`,
		token).Scan(&s.Token, &created, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.CreatedAt, s.ExpiresAt = created.Time, expires.Time
	return s, nil
}

func (r *sqliteSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token = ?`, token)
	return err
}

// DeleteExpired removes sessions whose expiry is before now and returns how
// many were removed.
func (r *sqliteSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at < ?`, formatTime(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
