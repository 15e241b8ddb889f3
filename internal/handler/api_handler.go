package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/service"
)

// APIHandler serves the public read-only JSON feeds consumed by the static
// site. Only active (or published) rows are exposed.
type APIHandler struct {
	software service.SoftwareService
	releases service.ReleaseNoteService
	issues   service.KnownIssueService
	clients  service.ClientService
}

func NewAPIHandler(software service.SoftwareService, releases service.ReleaseNoteService, issues service.KnownIssueService, clients service.ClientService) *APIHandler {
	return &APIHandler{software: software, releases: releases, issues: issues, clients: clients}
}

var visible = model.ListFilter{OnlyVisible: true}

// formatReleaseDate writes the naive ISO-8601 form the site scripts parse:
// microseconds as six digits, omitted entirely when zero.
func formatReleaseDate(t time.Time) string {
	t = t.UTC()
	s := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

type releaseItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Version      *string `json:"version"`
	SoftwareID   *int64  `json:"software_id"`
	SoftwareName *string `json:"software_name"`
	ReleaseDate  string  `json:"release_date"`
	Content      *string `json:"content"`
}

type issueItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	Content string `json:"content"`
}

type clientItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Industry  *string `json:"industry"`
	City      *string `json:"city"`
	Website   *string `json:"website"`
	Image     *string `json:"image"`
	SortOrder int     `json:"sort_order"`
}

func writeItems[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func listFailed(w http.ResponseWriter, r *http.Request, what string, err error) {
	serverError(w, r, what+" list failed", err)
}

// Software handles GET /api/software.json.
func (h *APIHandler) Software(w http.ResponseWriter, r *http.Request) {
	items, err := h.software.List(r.Context(), visible)
	if err != nil {
		listFailed(w, r, "software", err)
		return
	}
	writeItems(w, items)
}

// Releases handles GET /api/releases.json.
func (h *APIHandler) Releases(w http.ResponseWriter, r *http.Request) {
	notes, err := h.releases.List(r.Context(), visible)
	if err != nil {
		listFailed(w, r, "release note", err)
		return
	}
	items := make([]releaseItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, releaseItem{
			ID:           n.ID,
			Title:        n.Title,
			Version:      n.Version,
			SoftwareID:   n.SoftwareID,
			SoftwareName: n.SoftwareName,
			ReleaseDate:  formatReleaseDate(n.ReleaseDate),
			Content:      n.Content,
		})
	}
	writeItems(w, items)
}

// KnownIssues handles GET /api/known_issues.json.
func (h *APIHandler) KnownIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.issues.List(r.Context(), visible)
	if err != nil {
		listFailed(w, r, "known issue", err)
		return
	}
	items := make([]issueItem, 0, len(issues))
	for _, i := range issues {
		status := i.Status
		if status == "" {
			status = model.DefaultIssueStatus
		}
		content := ""
		if i.Content != nil {
			content = *i.Content
		}
		items = append(items, issueItem{ID: i.ID, Title: i.Title, Status: status, Content: content})
	}
	writeItems(w, items)
}

// Clients handles GET /api/clients.json.
func (h *APIHandler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context(), visible)
	if err != nil {
		listFailed(w, r, "client", err)
		return
	}
	items := make([]clientItem, 0, len(clients))
	for _, c := range clients {
		items = append(items, clientItem{
			ID:        c.ID,
			Name:      c.Name,
			Industry:  c.Industry,
			City:      c.City,
			Website:   c.Website,
			Image:     c.Image,
			SortOrder: c.SortOrder,
		})
	}
	writeItems(w, items)
}
