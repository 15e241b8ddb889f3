package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock KnownIssueService
// ---------------------------------------------------------------------------

type mockKnownIssueService struct {
	listFunc   func(ctx context.Context, filter model.ListFilter) ([]*model.KnownIssue, error)
	getFunc    func(ctx context.Context, id int64) (*model.KnownIssue, error)
	createFunc func(ctx context.Context, in model.KnownIssueInput) (*model.KnownIssue, error)
	updateFunc func(ctx context.Context, id int64, in model.KnownIssueInput) (*model.KnownIssue, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockKnownIssueService) List(ctx context.Context, filter model.ListFilter) ([]*model.KnownIssue, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}
func (m *mockKnownIssueService) Get(ctx context.Context, id int64) (*model.KnownIssue, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockKnownIssueService) Create(ctx context.Context, in model.KnownIssueInput) (*model.KnownIssue, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.KnownIssue{ID: 1}, nil
}
func (m *mockKnownIssueService) Update(ctx context.Context, id int64, in model.KnownIssueInput) (*model.KnownIssue, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, in)
	}
	return nil, repository.ErrNotFound
}
func (m *mockKnownIssueService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestIssueHandler_Edit_MissingIs404(t *testing.T) {
	h := NewIssueHandler(&mockKnownIssueService{}, testViews(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/issues/12/edit", nil)
	req.SetPathValue("id", "12")
	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestIssueHandler_Update_Success(t *testing.T) {
	var got model.KnownIssueInput
	mock := &mockKnownIssueService{
		updateFunc: func(_ context.Context, id int64, in model.KnownIssueInput) (*model.KnownIssue, error) {
			got = in
			return &model.KnownIssue{ID: id}, nil
		},
	}
	h := NewIssueHandler(mock, testViews(t))

	form := url.Values{"title": {"Crash"}, "status": {"Fixed"}, "is_active": {"0"}}
	req := formRequest(http.MethodPost, "/admin/issues/2/edit", form)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/issues" {
		t.Fatalf("expected 303 to /admin/issues, got %d", rec.Code)
	}
	if got.Status != "Fixed" || got.IsActive {
		t.Errorf("unexpected input: %+v", got)
	}
}

func TestIssueHandler_New_RendersStatuses(t *testing.T) {
	h := NewIssueHandler(&mockKnownIssueService{}, testViews(t))

	rec := httptest.NewRecorder()
	h.New(rec, httptest.NewRequest(http.MethodGet, "/admin/issues/new", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, s := range model.IssueStatuses {
		if !strings.Contains(rec.Body.String(), `<option value="`+s+`">`) {
			t.Errorf("expected status option %q", s)
		}
	}
}
