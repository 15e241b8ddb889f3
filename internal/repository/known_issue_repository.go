package repository

import (
	"context"

	"github.com/catalogcms/backend/internal/model"
)

// KnownIssueRepository は既知の不具合の永続化インターフェース
type KnownIssueRepository interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.KnownIssue, error)
	GetByID(ctx context.Context, id int64) (*model.KnownIssue, error)
	Create(ctx context.Context, issue *model.KnownIssue) error
	Update(ctx context.Context, issue *model.KnownIssue) error
	Delete(ctx context.Context, id int64) error
}
