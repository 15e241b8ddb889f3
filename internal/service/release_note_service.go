package service

import (
	"context"
	"strings"
	"time"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
)

// ReleaseNoteService はリリースノートのビジネスロジック
type ReleaseNoteService interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.ReleaseNote, error)
	Get(ctx context.Context, id int64) (*model.ReleaseNote, error)
	Create(ctx context.Context, in model.ReleaseNoteInput) (*model.ReleaseNote, error)
	Update(ctx context.Context, id int64, in model.ReleaseNoteInput) (*model.ReleaseNote, error)
	Delete(ctx context.Context, id int64) error
}

// ReleaseNoteServiceImpl は ReleaseNoteService の実装
type ReleaseNoteServiceImpl struct {
	repo repository.ReleaseNoteRepository
	now  func() time.Time
}

// NewReleaseNoteService は ReleaseNoteServiceImpl を生成する
func NewReleaseNoteService(repo repository.ReleaseNoteRepository) ReleaseNoteService {
	return &ReleaseNoteServiceImpl{repo: repo, now: time.Now}
}

// ValidateReleaseNote checks the required fields of a submission.
func ValidateReleaseNote(in model.ReleaseNoteInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return required("title")
	}
	return nil
}

func (s *ReleaseNoteServiceImpl) apply(n *model.ReleaseNote, in model.ReleaseNoteInput) {
	n.Title = in.Title
	n.Version = OptionalString(in.Version)
	n.SoftwareID = parseReferenceID(in.SoftwareID)
	n.ReleaseDate = ParseReleaseDate(in.ReleaseDate, s.now().UTC())
	n.Content = OptionalString(in.Content)
	n.IsPublished = in.IsPublished
}

func (s *ReleaseNoteServiceImpl) List(ctx context.Context, filter model.ListFilter) ([]*model.ReleaseNote, error) {
	return s.repo.List(ctx, filter)
}

func (s *ReleaseNoteServiceImpl) Get(ctx context.Context, id int64) (*model.ReleaseNote, error) {
	return s.repo.GetByID(ctx, id)
}

// Create はリリースノートを作成する。software_id は存在確認しない（ソフト参照）。
func (s *ReleaseNoteServiceImpl) Create(ctx context.Context, in model.ReleaseNoteInput) (*model.ReleaseNote, error) {
	if err := ValidateReleaseNote(in); err != nil {
		return nil, err
	}
	n := &model.ReleaseNote{}
	s.apply(n, in)
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ReleaseNoteServiceImpl) Update(ctx context.Context, id int64, in model.ReleaseNoteInput) (*model.ReleaseNote, error) {
	if err := ValidateReleaseNote(in); err != nil {
		return nil, err
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(n, in)
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ReleaseNoteServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
