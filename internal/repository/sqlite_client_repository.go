package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

const clientColumns = `id, name, industry, city, website, image, COALESCE(sort_order, 0),
	COALESCE(is_active, 1), created_at, updated_at`

// SqliteClientRepository は ClientRepository の SQLite 実装
type SqliteClientRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSqliteClientRepository は SqliteClientRepository を生成する
func NewSqliteClientRepository(s *Store) *SqliteClientRepository {
	return &SqliteClientRepository{db: s.db, now: time.Now}
}

func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
	var (
		c                model.Client
		created, updated dbTime
	)
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.City, &c.Website, &c.Image,
		&c.SortOrder, &c.IsActive, &created, &updated)
	if err != nil {
		return nil, err
	}
	c.CreatedAt, c.UpdatedAt = created.Time, updated.Time
	return &c, nil
}

// List は sort_order 昇順、id 降順で一覧を返す
func (r *SqliteClientRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	if filter.OnlyVisible {
		query += ` WHERE COALESCE(is_active, 1) = 1`
	}
	query += ` ORDER BY COALESCE(sort_order, 0) ASC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *SqliteClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SqliteClientRepository) Create(ctx context.Context, c *model.Client) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (name, industry, city, website, image, sort_order, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Industry, c.City, c.Website, c.Image, c.SortOrder, c.IsActive,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return err
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

func (r *SqliteClientRepository) Update(ctx context.Context, c *model.Client) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name=?, industry=?, city=?, website=?, image=?, sort_order=?,
			is_active=?, updated_at=?
		 WHERE id=?`,
		c.Name, c.Industry, c.City, c.Website, c.Image, c.SortOrder, c.IsActive,
		formatTime(now), c.ID,
	)
	if err := affectedOne(res, err); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

func (r *SqliteClientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=?`, id)
	return err
}
