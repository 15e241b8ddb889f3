package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

func newTestAPIHandler() (*APIHandler, *mockSoftwareService, *mockReleaseNoteService, *mockKnownIssueService, *mockClientService) {
	sw := &mockSoftwareService{}
	rn := &mockReleaseNoteService{}
	ki := &mockKnownIssueService{}
	cl := &mockClientService{}
	return NewAPIHandler(sw, rn, ki, cl), sw, rn, ki, cl
}

func decodeItems(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Items
}

func TestAPIHandler_Software_OnlyVisible(t *testing.T) {
	h, sw, _, _, _ := newTestAPIHandler()
	var gotFilter model.ListFilter
	sw.listFunc = func(_ context.Context, f model.ListFilter) ([]*model.Software, error) {
		gotFilter = f
		return []*model.Software{{ID: 1, Name: "Ledger", IsActive: true}}, nil
	}

	rec := httptest.NewRecorder()
	h.Software(rec, httptest.NewRequest(http.MethodGet, "/api/software.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotFilter.OnlyVisible {
		t.Error("expected visible filter")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
	items := decodeItems(t, rec)
	if len(items) != 1 || items[0]["name"] != "Ledger" {
		t.Errorf("unexpected items: %v", items)
	}
}

func TestAPIHandler_EmptyListIsArray(t *testing.T) {
	h, _, _, _, _ := newTestAPIHandler()

	rec := httptest.NewRecorder()
	h.Clients(rec, httptest.NewRequest(http.MethodGet, "/api/clients.json", nil))

	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAPIHandler_KnownIssues_Defaults(t *testing.T) {
	h, _, _, ki, _ := newTestAPIHandler()
	ki.listFunc = func(context.Context, model.ListFilter) ([]*model.KnownIssue, error) {
		return []*model.KnownIssue{{ID: 3, Title: "Slow export"}}, nil
	}

	rec := httptest.NewRecorder()
	h.KnownIssues(rec, httptest.NewRequest(http.MethodGet, "/api/known_issues.json", nil))

	items := decodeItems(t, rec)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0]["status"] != "Open" || items[0]["content"] != "" {
		t.Errorf("expected defaults, got %v", items[0])
	}
}

func TestAPIHandler_Releases_Projection(t *testing.T) {
	h, _, rn, _, _ := newTestAPIHandler()
	name := "Ledger"
	sid := int64(2)
	rn.listFunc = func(context.Context, model.ListFilter) ([]*model.ReleaseNote, error) {
		return []*model.ReleaseNote{{
			ID:           7,
			Title:        "v2",
			SoftwareID:   &sid,
			SoftwareName: &name,
			ReleaseDate:  time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			IsPublished:  true,
		}}, nil
	}

	rec := httptest.NewRecorder()
	h.Releases(rec, httptest.NewRequest(http.MethodGet, "/api/releases.json", nil))

	items := decodeItems(t, rec)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it["release_date"] != "2024-03-01T09:30:00" {
		t.Errorf("unexpected release_date %v", it["release_date"])
	}
	if it["software_name"] != "Ledger" {
		t.Errorf("unexpected software_name %v", it["software_name"])
	}
	if _, ok := it["is_published"]; ok {
		t.Error("is_published must not be exposed")
	}
}

func TestFormatReleaseDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole seconds", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), "2024-03-01T10:00:00"},
		{"half second keeps zeros", time.Date(2024, 3, 1, 10, 0, 0, 500_000_000, time.UTC), "2024-03-01T10:00:00.500000"},
		{"microseconds", time.Date(2024, 3, 1, 10, 0, 0, 123_456_000, time.UTC), "2024-03-01T10:00:00.123456"},
		{"sub-microsecond dropped", time.Date(2024, 3, 1, 10, 0, 0, 999, time.UTC), "2024-03-01T10:00:00"},
		{"converted to UTC", time.Date(2024, 3, 1, 19, 0, 0, 0, time.FixedZone("JST", 9*3600)), "2024-03-01T10:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatReleaseDate(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIHandler_ListError(t *testing.T) {
	h, _, _, _, cl := newTestAPIHandler()
	cl.listFunc = func(context.Context, model.ListFilter) ([]*model.Client, error) {
		return nil, errors.New("db locked")
	}

	rec := httptest.NewRecorder()
	h.Clients(rec, httptest.NewRequest(http.MethodGet, "/api/clients.json", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
