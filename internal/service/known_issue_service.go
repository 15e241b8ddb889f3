package service

import (
	"context"
	"strings"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
)

// KnownIssueService は既知の不具合のビジネスロジック
type KnownIssueService interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.KnownIssue, error)
	Get(ctx context.Context, id int64) (*model.KnownIssue, error)
	Create(ctx context.Context, in model.KnownIssueInput) (*model.KnownIssue, error)
	Update(ctx context.Context, id int64, in model.KnownIssueInput) (*model.KnownIssue, error)
	Delete(ctx context.Context, id int64) error
}

type KnownIssueServiceImpl struct {
	repo repository.KnownIssueRepository
}

func NewKnownIssueService(repo repository.KnownIssueRepository) KnownIssueService {
	return &KnownIssueServiceImpl{repo: repo}
}

// ValidateKnownIssue checks the required fields of a submission.
func ValidateKnownIssue(in model.KnownIssueInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return required("title")
	}
	return nil
}

func applyKnownIssueInput(i *model.KnownIssue, in model.KnownIssueInput) {
	i.Title = in.Title
	i.Status = in.Status
	if strings.TrimSpace(i.Status) == "" {
		i.Status = model.DefaultIssueStatus
	}
	i.Content = OptionalString(in.Content)
	i.SortOrder = ParseInt(in.SortOrder, 0)
	i.IsActive = in.IsActive
}

func (s *KnownIssueServiceImpl) List(ctx context.Context, filter model.ListFilter) ([]*model.KnownIssue, error) {
	return s.repo.List(ctx, filter)
}

func (s *KnownIssueServiceImpl) Get(ctx context.Context, id int64) (*model.KnownIssue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *KnownIssueServiceImpl) Create(ctx context.Context, in model.KnownIssueInput) (*model.KnownIssue, error) {
	if err := ValidateKnownIssue(in); err != nil {
		return nil, err
	}
	i := &model.KnownIssue{}
	applyKnownIssueInput(i, in)
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

// Update overwrites the issue. Concurrent updates are last-writer-wins.
func (s *KnownIssueServiceImpl) Update(ctx context.Context, id int64, in model.KnownIssueInput) (*model.KnownIssue, error) {
	if err := ValidateKnownIssue(in); err != nil {
		return nil, err
	}
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyKnownIssueInput(i, in)
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *KnownIssueServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
