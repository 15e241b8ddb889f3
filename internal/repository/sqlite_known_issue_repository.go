package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

const knownIssueColumns = `id, title, COALESCE(status, ''), content, COALESCE(sort_order, 0),
	COALESCE(is_active, 1), created_at, updated_at`

// SqliteKnownIssueRepository は KnownIssueRepository の SQLite 実装
type SqliteKnownIssueRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSqliteKnownIssueRepository は SqliteKnownIssueRepository を生成する
func NewSqliteKnownIssueRepository(s *Store) *SqliteKnownIssueRepository {
	return &SqliteKnownIssueRepository{db: s.db, now: time.Now}
}

func scanKnownIssue(row interface{ Scan(...any) error }) (*model.KnownIssue, error) {
	var (
		i                model.KnownIssue
		created, updated dbTime
	)
	err := row.Scan(&i.ID, &i.Title, &i.Status, &i.Content, &i.SortOrder, &i.IsActive, &created, &updated)
	if err != nil {
		return nil, err
	}
	i.CreatedAt, i.UpdatedAt = created.Time, updated.Time
	return &i, nil
}

// List は sort_order 昇順、id 降順で一覧を返す
func (r *SqliteKnownIssueRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.KnownIssue, error) {
	query := `SELECT ` + knownIssueColumns + ` FROM known_issues`
	if filter.OnlyVisible {
		query += ` WHERE COALESCE(is_active, 1) = 1`
	}
	query += ` ORDER BY COALESCE(sort_order, 0), id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []*model.KnownIssue
	for rows.Next() {
		i, err := scanKnownIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

// GetByID は ID で取得する
func (r *SqliteKnownIssueRepository) GetByID(ctx context.Context, id int64) (*model.KnownIssue, error) {
	i, err := scanKnownIssue(r.db.QueryRowContext(ctx,
		`SELECT `+knownIssueColumns+` FROM known_issues WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *SqliteKnownIssueRepository) Create(ctx context.Context, issue *model.KnownIssue) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO known_issues (title, status, content, sort_order, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		issue.Title, issue.Status, issue.Content, issue.SortOrder, issue.IsActive,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return err
	}
	if issue.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	issue.CreatedAt, issue.UpdatedAt = now, now
	return nil
}

// Update は全フィールドを上書きする。並行更新は後勝ち。
func (r *SqliteKnownIssueRepository) Update(ctx context.Context, issue *model.KnownIssue) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE known_issues SET title=?, status=?, content=?, sort_order=?, is_active=?, updated_at=?
		 WHERE id=?`,
		issue.Title, issue.Status, issue.Content, issue.SortOrder, issue.IsActive,
		formatTime(now), issue.ID,
	)
	if err := affectedOne(res, err); err != nil {
		return err
	}
	issue.UpdatedAt = now
	return nil
}

func (r *SqliteKnownIssueRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM known_issues WHERE id=?`, id)
	return err
}
