package repository

import (
	"context"

	"github.com/catalogcms/backend/internal/model"
)

// SoftwareRepository はソフトウェア製品の永続化インターフェース
type SoftwareRepository interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Software, error)
	ListNames(ctx context.Context) ([]model.SoftwareName, error)
	GetByID(ctx context.Context, id int64) (*model.Software, error)
	Create(ctx context.Context, s *model.Software) error
	Update(ctx context.Context, s *model.Software) error
	Delete(ctx context.Context, id int64) error
}
