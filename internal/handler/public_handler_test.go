package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

func TestPublicHandler_ReleaseNotes(t *testing.T) {
	version := "2.1.0"
	var gotFilter model.ListFilter
	mock := &mockReleaseNoteService{
		listFunc: func(_ context.Context, f model.ListFilter) ([]*model.ReleaseNote, error) {
			gotFilter = f
			return []*model.ReleaseNote{{ID: 1, Title: "Spring <update>", Version: &version, ReleaseDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}}, nil
		},
	}
	h := NewPublicHandler(mock, testViews(t))

	rec := httptest.NewRecorder()
	h.ReleaseNotes(rec, httptest.NewRequest(http.MethodGet, "/releases", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotFilter.OnlyVisible {
		t.Error("expected only published notes")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Spring &lt;update&gt;") || !strings.Contains(body, "2.1.0") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestPublicHandler_ReleaseNotes_Empty(t *testing.T) {
	h := NewPublicHandler(&mockReleaseNoteService{}, testViews(t))

	rec := httptest.NewRecorder()
	h.ReleaseNotes(rec, httptest.NewRequest(http.MethodGet, "/releases", nil))

	if !strings.Contains(rec.Body.String(), "No release notes have been published yet.") {
		t.Error("expected empty state")
	}
}
