package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

// software_id is a soft reference; the LEFT JOIN leaves software_name NULL
// when the row it points at is gone.
const releaseNoteSelect = `
	SELECT rn.id, rn.title, rn.version, rn.software_id, rn.release_date, rn.content,
	       COALESCE(rn.is_published, 1), rn.created_at, rn.updated_at, s.name AS software_name
	FROM release_notes rn
	LEFT JOIN software s ON s.id = rn.software_id`

// SqliteReleaseNoteRepository は ReleaseNoteRepository の SQLite 実装
type SqliteReleaseNoteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSqliteReleaseNoteRepository は SqliteReleaseNoteRepository を生成する
func NewSqliteReleaseNoteRepository(s *Store) *SqliteReleaseNoteRepository {
	return &SqliteReleaseNoteRepository{db: s.db, now: time.Now}
}

func scanReleaseNote(row interface{ Scan(...any) error }) (*model.ReleaseNote, error) {
	var (
		n                          model.ReleaseNote
		softwareID                 sql.NullInt64
		released, created, updated dbTime
	)
	err := row.Scan(&n.ID, &n.Title, &n.Version, &softwareID, &released, &n.Content,
		&n.IsPublished, &created, &updated, &n.SoftwareName)
	if err != nil {
		return nil, err
	}
	n.SoftwareID = nullInt64Ptr(softwareID)
	n.ReleaseDate, n.CreatedAt, n.UpdatedAt = released.Time, created.Time, updated.Time
	return &n, nil
}

// List は release_date 降順、id 降順でリリースノート一覧を返す。
// filter.OnlyVisible の場合は公開済みのものだけ返す。
func (r *SqliteReleaseNoteRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.ReleaseNote, error) {
	query := releaseNoteSelect
	if filter.OnlyVisible {
		query += ` WHERE COALESCE(rn.is_published, 1) = 1`
	}
	query += ` ORDER BY rn.release_date DESC, rn.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*model.ReleaseNote
	for rows.Next() {
		n, err := scanReleaseNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetByID は ID でリリースノートを取得する
func (r *SqliteReleaseNoteRepository) GetByID(ctx context.Context, id int64) (*model.ReleaseNote, error) {
	n, err := scanReleaseNote(r.db.QueryRowContext(ctx, releaseNoteSelect+` WHERE rn.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create はリリースノートを作成する
func (r *SqliteReleaseNoteRepository) Create(ctx context.Context, n *model.ReleaseNote) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO release_notes (title, version, software_id, release_date, content,
			is_published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Title, n.Version, n.SoftwareID, formatTime(n.ReleaseDate), n.Content,
		n.IsPublished, formatTime(now), formatTime(now),
	)
	if err != nil {
		return err
	}
	if n.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	n.CreatedAt, n.UpdatedAt = now, now
	return nil
}

// Update はリリースノートを上書き更新する
func (r *SqliteReleaseNoteRepository) Update(ctx context.Context, n *model.ReleaseNote) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE release_notes SET title=?, version=?, software_id=?, release_date=?, content=?,
			is_published=?, updated_at=?
		 WHERE id=?`,
		n.Title, n.Version, n.SoftwareID, formatTime(n.ReleaseDate), n.Content,
		n.IsPublished, formatTime(now), n.ID,
	)
	if err := affectedOne(res, err); err != nil {
		return err
	}
	n.UpdatedAt = now
	return nil
}

// Delete はリリースノートを削除する。存在しない ID は何もしない。
func (r *SqliteReleaseNoteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM release_notes WHERE id=?`, id)
	return err
}
