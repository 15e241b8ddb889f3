package repository

import (
	"context"

	"github.com/catalogcms/backend/internal/model"
)

// ReleaseNoteRepository はリリースノートの永続化インターフェース
type ReleaseNoteRepository interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.ReleaseNote, error)
	GetByID(ctx context.Context, id int64) (*model.ReleaseNote, error)
	Create(ctx context.Context, n *model.ReleaseNote) error
	Update(ctx context.Context, n *model.ReleaseNote) error
	Delete(ctx context.Context, id int64) error
}
