package repository

import (
	"context"

	"github.com/catalogcms/backend/internal/model"
)

// ClientRepository は導入企業（クライアント）の永続化インターフェース
type ClientRepository interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Client, error)
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id int64) error
}
