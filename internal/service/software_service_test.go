package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock SoftwareRepository
// ---------------------------------------------------------------------------

type mockSoftwareRepository struct {
	listFunc      func(ctx context.Context, filter model.ListFilter) ([]*model.Software, error)
	listNamesFunc func(ctx context.Context) ([]model.SoftwareName, error)
	getByIDFunc   func(ctx context.Context, id int64) (*model.Software, error)
	createFunc    func(ctx context.Context, s *model.Software) error
	updateFunc    func(ctx context.Context, s *model.Software) error
	deleteFunc    func(ctx context.Context, id int64) error
}

func (m *mockSoftwareRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Software, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}
func (m *mockSoftwareRepository) ListNames(ctx context.Context) ([]model.SoftwareName, error) {
	if m.listNamesFunc != nil {
		return m.listNamesFunc(ctx)
	}
	return nil, nil
}
func (m *mockSoftwareRepository) GetByID(ctx context.Context, id int64) (*model.Software, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockSoftwareRepository) Create(ctx context.Context, s *model.Software) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}
func (m *mockSoftwareRepository) Update(ctx context.Context, s *model.Software) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, s)
	}
	return nil
}
func (m *mockSoftwareRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock ImageSaver
// ---------------------------------------------------------------------------

type mockImageSaver struct {
	saveFunc func(ctx context.Context, filename string, data io.Reader) (string, error)
	calls    int
}

func (m *mockImageSaver) Save(ctx context.Context, filename string, data io.Reader) (string, error) {
	m.calls++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, filename, data)
	}
	return "/assets/uploads/" + filename, nil
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSoftwareService_Create_RequiresName(t *testing.T) {
	called := false
	repo := &mockSoftwareRepository{
		createFunc: func(_ context.Context, _ *model.Software) error {
			called = true
			return nil
		},
	}
	svc := NewSoftwareService(repo, &mockImageSaver{})

	_, err := svc.Create(context.Background(), model.SoftwareInput{Name: "  "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "name" {
		t.Errorf("expected field=name, got %q", verr.Field)
	}
	if called {
		t.Error("repository must not be called on validation failure")
	}
}

func TestSoftwareService_Create_FreeClearsPrices(t *testing.T) {
	var stored *model.Software
	repo := &mockSoftwareRepository{
		createFunc: func(_ context.Context, s *model.Software) error {
			s.ID = 1
			stored = s
			return nil
		},
	}
	svc := NewSoftwareService(repo, &mockImageSaver{})

	got, err := svc.Create(context.Background(), model.SoftwareInput{
		Name:         "Tool",
		IsFree:       true,
		IsActive:     true,
		PriceOneTime: "5000",
		PriceYearly:  "1200",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || got.ID != 1 {
		t.Fatal("expected software to be stored")
	}
	if stored.PriceOneTime != nil || stored.PriceYearly != nil {
		t.Errorf("expected prices nil for free product, got %v / %v", stored.PriceOneTime, stored.PriceYearly)
	}
	if !stored.IsFree || !stored.IsActive {
		t.Error("expected flags to be kept")
	}
}

func TestSoftwareService_Create_CoercesFields(t *testing.T) {
	var stored *model.Software
	repo := &mockSoftwareRepository{
		createFunc: func(_ context.Context, s *model.Software) error {
			stored = s
			return nil
		},
	}
	svc := NewSoftwareService(repo, &mockImageSaver{})

	_, err := svc.Create(context.Background(), model.SoftwareInput{
		Name:         "Tool",
		Slug:         "",
		PriceOneTime: "abc",
		PriceYearly:  "1200",
		SortOrder:    "x",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Slug != nil {
		t.Errorf("expected empty slug stored as nil, got %q", *stored.Slug)
	}
	if stored.PriceOneTime != nil {
		t.Errorf("expected non-numeric price to be nil, got %d", *stored.PriceOneTime)
	}
	if stored.PriceYearly == nil || *stored.PriceYearly != 1200 {
		t.Errorf("expected price_yearly=1200, got %v", stored.PriceYearly)
	}
	if stored.SortOrder != 0 {
		t.Errorf("expected sort_order=0, got %d", stored.SortOrder)
	}
	if stored.Image != nil {
		t.Errorf("expected no image, got %q", *stored.Image)
	}
}

func TestSoftwareService_Create_WithImage(t *testing.T) {
	var stored *model.Software
	repo := &mockSoftwareRepository{
		createFunc: func(_ context.Context, s *model.Software) error {
			stored = s
			return nil
		},
	}
	images := &mockImageSaver{
		saveFunc: func(_ context.Context, filename string, _ io.Reader) (string, error) {
			return "/assets/uploads/logo-1.png", nil
		},
	}
	svc := NewSoftwareService(repo, images)

	_, err := svc.Create(context.Background(), model.SoftwareInput{
		Name:  "Tool",
		Image: &model.Upload{Filename: "logo.png", Data: strings.NewReader("png")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Image == nil || *stored.Image != "/assets/uploads/logo-1.png" {
		t.Errorf("expected image url, got %v", stored.Image)
	}
}

func TestSoftwareService_Update_NotFound(t *testing.T) {
	repo := &mockSoftwareRepository{}
	svc := NewSoftwareService(repo, &mockImageSaver{})

	_, err := svc.Update(context.Background(), 99, model.SoftwareInput{Name: "Tool"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSoftwareService_Update_FreeClearsPrices(t *testing.T) {
	var updated *model.Software
	repo := &mockSoftwareRepository{
		getByIDFunc: func(_ context.Context, id int64) (*model.Software, error) {
			return &model.Software{ID: id, Name: "Old", PriceOneTime: intPtr(100), PriceYearly: intPtr(10)}, nil
		},
		updateFunc: func(_ context.Context, s *model.Software) error {
			updated = s
			return nil
		},
	}
	svc := NewSoftwareService(repo, &mockImageSaver{})

	_, err := svc.Update(context.Background(), 3, model.SoftwareInput{Name: "New", IsFree: true, PriceOneTime: "500"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != 3 || updated.Name != "New" {
		t.Errorf("unexpected record: %+v", updated)
	}
	if updated.PriceOneTime != nil || updated.PriceYearly != nil {
		t.Error("expected prices cleared on free update")
	}
}

func TestSoftwareService_Update_ImageBranches(t *testing.T) {
	tests := []struct {
		name      string
		upload    *model.Upload
		remove    bool
		saved     string
		want      *string
		wantSaves int
	}{
		{
			name: "no upload keeps current",
			want: strPtr("/assets/uploads/old.png"),
		},
		{
			name:   "remove clears",
			remove: true,
			upload: &model.Upload{Filename: "new.png", Data: strings.NewReader("x")},
			want:   nil,
		},
		{
			name:      "accepted upload replaces",
			upload:    &model.Upload{Filename: "new.png", Data: strings.NewReader("x")},
			saved:     "/assets/uploads/new-1.png",
			want:      strPtr("/assets/uploads/new-1.png"),
			wantSaves: 1,
		},
		{
			name:      "rejected upload keeps current",
			upload:    &model.Upload{Filename: "payload.exe", Data: strings.NewReader("x")},
			saved:     "",
			want:      strPtr("/assets/uploads/old.png"),
			wantSaves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated *model.Software
			repo := &mockSoftwareRepository{
				getByIDFunc: func(_ context.Context, id int64) (*model.Software, error) {
					return &model.Software{ID: id, Name: "Tool", Image: strPtr("/assets/uploads/old.png")}, nil
				},
				updateFunc: func(_ context.Context, s *model.Software) error {
					updated = s
					return nil
				},
			}
			images := &mockImageSaver{
				saveFunc: func(_ context.Context, _ string, _ io.Reader) (string, error) {
					return tt.saved, nil
				},
			}
			svc := NewSoftwareService(repo, images)

			_, err := svc.Update(context.Background(), 1, model.SoftwareInput{
				Name:        "Tool",
				Image:       tt.upload,
				RemoveImage: tt.remove,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch {
			case tt.want == nil && updated.Image != nil:
				t.Errorf("expected nil image, got %q", *updated.Image)
			case tt.want != nil && (updated.Image == nil || *updated.Image != *tt.want):
				t.Errorf("expected image %q, got %v", *tt.want, updated.Image)
			}
			if images.calls != tt.wantSaves {
				t.Errorf("expected %d saves, got %d", tt.wantSaves, images.calls)
			}
		})
	}
}

func TestSoftwareService_Update_ImageSaveError(t *testing.T) {
	repo := &mockSoftwareRepository{
		getByIDFunc: func(_ context.Context, id int64) (*model.Software, error) {
			return &model.Software{ID: id, Name: "Tool"}, nil
		},
		updateFunc: func(_ context.Context, _ *model.Software) error {
			t.Error("update must not run after a failed save")
			return nil
		},
	}
	images := &mockImageSaver{
		saveFunc: func(_ context.Context, _ string, _ io.Reader) (string, error) {
			return "", errors.New("disk full")
		},
	}
	svc := NewSoftwareService(repo, images)

	_, err := svc.Update(context.Background(), 1, model.SoftwareInput{
		Name:  "Tool",
		Image: &model.Upload{Filename: "a.png", Data: strings.NewReader("x")},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSoftwareService_List_PassesFilter(t *testing.T) {
	repo := &mockSoftwareRepository{
		listFunc: func(_ context.Context, filter model.ListFilter) ([]*model.Software, error) {
			if !filter.OnlyVisible {
				t.Error("expected OnlyVisible filter")
			}
			return []*model.Software{{ID: 1, Name: "A", IsActive: true}}, nil
		},
	}
	svc := NewSoftwareService(repo, nil)

	items, err := svc.List(context.Background(), model.ListFilter{OnlyVisible: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}
}
