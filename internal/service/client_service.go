package service

import (
	"context"
	"strings"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
)

// ClientService は導入企業のビジネスロジック
type ClientService interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Client, error)
	Get(ctx context.Context, id int64) (*model.Client, error)
	Create(ctx context.Context, in model.ClientInput) (*model.Client, error)
	Update(ctx context.Context, id int64, in model.ClientInput) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
}

type ClientServiceImpl struct {
	repo   repository.ClientRepository
	images ImageSaver
}

func NewClientService(repo repository.ClientRepository, images ImageSaver) ClientService {
	return &ClientServiceImpl{repo: repo, images: images}
}

// ValidateClient checks the required fields of a submission.
func ValidateClient(in model.ClientInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return required("name")
	}
	return nil
}

func applyClientInput(c *model.Client, in model.ClientInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Industry = OptionalString(in.Industry)
	c.City = OptionalString(in.City)
	c.Website = OptionalString(in.Website)
	c.SortOrder = ParseInt(in.SortOrder, 0)
	c.IsActive = in.IsActive
}

func (s *ClientServiceImpl) List(ctx context.Context, filter model.ListFilter) ([]*model.Client, error) {
	return s.repo.List(ctx, filter)
}

func (s *ClientServiceImpl) Get(ctx context.Context, id int64) (*model.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientServiceImpl) Create(ctx context.Context, in model.ClientInput) (*model.Client, error) {
	if err := ValidateClient(in); err != nil {
		return nil, err
	}
	c := &model.Client{}
	applyClientInput(c, in)

	image, err := resolveImage(ctx, s.images, nil, in.Image, false)
	if err != nil {
		return nil, err
	}
	c.Image = image

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientServiceImpl) Update(ctx context.Context, id int64, in model.ClientInput) (*model.Client, error) {
	if err := ValidateClient(in); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyClientInput(c, in)

	image, err := resolveImage(ctx, s.images, c.Image, in.Image, in.RemoveImage)
	if err != nil {
		return nil, err
	}
	c.Image = image

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
