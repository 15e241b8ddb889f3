package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

const softwareColumns = `id, name, slug, category, description, price_one_time, price_yearly,
	COALESCE(is_free, 0), COALESCE(is_active, 1), download_url, payment_link_onetime,
	payment_link_yearly, image, COALESCE(sort_order, 0), created_at, updated_at`

// SqliteSoftwareRepository は SoftwareRepository の SQLite 実装
type SqliteSoftwareRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSqliteSoftwareRepository は SqliteSoftwareRepository を生成する
func NewSqliteSoftwareRepository(s *Store) *SqliteSoftwareRepository {
	return &SqliteSoftwareRepository{db: s.db, now: time.Now}
}

func scanSoftware(row interface{ Scan(...any) error }) (*model.Software, error) {
	var (
		s                model.Software
		created, updated dbTime
		price1, price2   sql.NullInt64
	)
	err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.Category, &s.Description, &price1, &price2,
		&s.IsFree, &s.IsActive, &s.DownloadURL, &s.PaymentLinkOneTime,
		&s.PaymentLinkYearly, &s.Image, &s.SortOrder, &created, &updated)
	if err != nil {
		return nil, err
	}
	s.PriceOneTime = nullIntPtr(price1)
	s.PriceYearly = nullIntPtr(price2)
	s.CreatedAt, s.UpdatedAt = created.Time, updated.Time
	return &s, nil
}

// List は sort_order, id 昇順でソフトウェア一覧を返す
func (r *SqliteSoftwareRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Software, error) {
	query := `SELECT ` + softwareColumns + ` FROM software`
	if filter.OnlyVisible {
		query += ` WHERE COALESCE(is_active, 1) = 1`
	}
	query += ` ORDER BY COALESCE(sort_order, 0), id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.Software
	for rows.Next() {
		s, err := scanSoftware(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// ListNames は名前順の id/name 一覧を返す（リリースノートのプルダウン用）
func (r *SqliteSoftwareRepository) ListNames(ctx context.Context) ([]model.SoftwareName, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM software ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []model.SoftwareName
	for rows.Next() {
		var n model.SoftwareName
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// GetByID は ID でソフトウェアを取得する
func (r *SqliteSoftwareRepository) GetByID(ctx context.Context, id int64) (*model.Software, error) {
	s, err := scanSoftware(r.db.QueryRowContext(ctx,
		`SELECT `+softwareColumns+` FROM software WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create はソフトウェアを作成し、ID とタイムスタンプを設定する
func (r *SqliteSoftwareRepository) Create(ctx context.Context, s *model.Software) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO software (name, slug, category, description, price_one_time, price_yearly,
			is_free, is_active, download_url, payment_link_onetime, payment_link_yearly,
			image, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Slug, s.Category, s.Description, s.PriceOneTime, s.PriceYearly,
		s.IsFree, s.IsActive, s.DownloadURL, s.PaymentLinkOneTime, s.PaymentLinkYearly,
		s.Image, s.SortOrder, formatTime(now), formatTime(now),
	)
	if err != nil {
		return err
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	s.CreatedAt, s.UpdatedAt = now, now
	return nil
}

// Update は全フィールドを上書きし updated_at を現在時刻にする
func (r *SqliteSoftwareRepository) Update(ctx context.Context, s *model.Software) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE software SET name=?, slug=?, category=?, description=?, price_one_time=?,
			price_yearly=?, is_free=?, is_active=?, download_url=?, payment_link_onetime=?,
			payment_link_yearly=?, image=?, sort_order=?, updated_at=?
		 WHERE id=?`,
		s.Name, s.Slug, s.Category, s.Description, s.PriceOneTime, s.PriceYearly,
		s.IsFree, s.IsActive, s.DownloadURL, s.PaymentLinkOneTime, s.PaymentLinkYearly,
		s.Image, s.SortOrder, formatTime(now), s.ID,
	)
	if err := affectedOne(res, err); err != nil {
		return err
	}
	s.UpdatedAt = now
	return nil
}

// Delete はソフトウェアを削除する。存在しない ID は何もしない。
// このソフトウェアを参照するリリースノートはそのまま残る。
func (r *SqliteSoftwareRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM software WHERE id=?`, id)
	return err
}
