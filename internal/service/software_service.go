package service

import (
	"context"
	"strings"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
)

// SoftwareService はソフトウェア製品のビジネスロジック
type SoftwareService interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Software, error)
	ListNames(ctx context.Context) ([]model.SoftwareName, error)
	Get(ctx context.Context, id int64) (*model.Software, error)
	Create(ctx context.Context, in model.SoftwareInput) (*model.Software, error)
	Update(ctx context.Context, id int64, in model.SoftwareInput) (*model.Software, error)
	Delete(ctx context.Context, id int64) error
}

// SoftwareServiceImpl は SoftwareService の実装
type SoftwareServiceImpl struct {
	repo   repository.SoftwareRepository
	images ImageSaver
}

// NewSoftwareService は SoftwareServiceImpl を生成する
func NewSoftwareService(repo repository.SoftwareRepository, images ImageSaver) SoftwareService {
	return &SoftwareServiceImpl{repo: repo, images: images}
}

// ValidateSoftware checks the required fields of a submission.
func ValidateSoftware(in model.SoftwareInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return required("name")
	}
	return nil
}

// applySoftwareInput overwrites every form-backed field of s. A free product
// never keeps prices, whatever was submitted.
func applySoftwareInput(s *model.Software, in model.SoftwareInput) {
	s.Name = in.Name
	s.Slug = OptionalString(in.Slug)
	s.Category = OptionalString(in.Category)
	s.Description = OptionalString(in.Description)
	s.IsFree = in.IsFree
	s.IsActive = in.IsActive
	if in.IsFree {
		s.PriceOneTime, s.PriceYearly = nil, nil
	} else {
		s.PriceOneTime = ParseOptionalInt(in.PriceOneTime)
		s.PriceYearly = ParseOptionalInt(in.PriceYearly)
	}
	s.DownloadURL = OptionalString(in.DownloadURL)
	s.PaymentLinkOneTime = OptionalString(in.PaymentLinkOneTime)
	s.PaymentLinkYearly = OptionalString(in.PaymentLinkYearly)
	s.SortOrder = ParseInt(in.SortOrder, 0)
}

func (s *SoftwareServiceImpl) List(ctx context.Context, filter model.ListFilter) ([]*model.Software, error) {
	return s.repo.List(ctx, filter)
}

func (s *SoftwareServiceImpl) ListNames(ctx context.Context) ([]model.SoftwareName, error) {
	return s.repo.ListNames(ctx)
}

func (s *SoftwareServiceImpl) Get(ctx context.Context, id int64) (*model.Software, error) {
	return s.repo.GetByID(ctx, id)
}

// Create は入力を検証・変換してソフトウェアを作成する
func (s *SoftwareServiceImpl) Create(ctx context.Context, in model.SoftwareInput) (*model.Software, error) {
	if err := ValidateSoftware(in); err != nil {
		return nil, err
	}
	item := &model.Software{}
	applySoftwareInput(item, in)

	image, err := resolveImage(ctx, s.images, nil, in.Image, false)
	if err != nil {
		return nil, err
	}
	item.Image = image

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update は既存レコードを全項目上書きする。画像は削除指定・新規アップロードがない限り保持する。
func (s *SoftwareServiceImpl) Update(ctx context.Context, id int64, in model.SoftwareInput) (*model.Software, error) {
	if err := ValidateSoftware(in); err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applySoftwareInput(item, in)

	image, err := resolveImage(ctx, s.images, item.Image, in.Image, in.RemoveImage)
	if err != nil {
		return nil, err
	}
	item.Image = image

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *SoftwareServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
