package handler

import (
	"net/http"

	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/view"
)

// PublicHandler renders the server-side public pages.
type PublicHandler struct {
	pages
	releases service.ReleaseNoteService
}

func NewPublicHandler(releases service.ReleaseNoteService, views *view.Renderer) *PublicHandler {
	return &PublicHandler{pages: pages{views: views}, releases: releases}
}

// ReleaseNotes handles GET /releases and /releases.html. Only published
// notes are listed.
func (h *PublicHandler) ReleaseNotes(w http.ResponseWriter, r *http.Request) {
	items, err := h.releases.List(r.Context(), visible)
	if err != nil {
		serverError(w, r, "release note list failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageReleaseNotes, view.Data{Title: "Release notes", Items: items})
}
