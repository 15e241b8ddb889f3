package handler

import (
	"errors"
	"net/http"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/view"
)

const releasesListPath = "/admin/releases"

// ReleaseHandler はリリースノート管理画面の HTTP ハンドラ
type ReleaseHandler struct {
	pages
	svc      service.ReleaseNoteService
	software service.SoftwareService
}

// NewReleaseHandler は ReleaseHandler を生成する。software はドロップダウン用。
func NewReleaseHandler(svc service.ReleaseNoteService, software service.SoftwareService, views *view.Renderer) *ReleaseHandler {
	return &ReleaseHandler{pages: pages{views: views}, svc: svc, software: software}
}

func releaseInput(r *http.Request) model.ReleaseNoteInput {
	return model.ReleaseNoteInput{
		Title:       formValue(r, "title"),
		Version:     formValue(r, "version"),
		SoftwareID:  formValue(r, "software_id"),
		ReleaseDate: formValue(r, "release_date"),
		Content:     formValue(r, "content"),
		IsPublished: formBool(r, "is_published", true),
	}
}

// formData builds the template context with the software dropdown filled.
func (h *ReleaseHandler) formData(r *http.Request, title string, item *model.ReleaseNote) (view.Data, error) {
	names, err := h.software.ListNames(r.Context())
	if err != nil {
		return view.Data{}, err
	}
	data := view.Data{Title: title, SoftwareItems: names}
	if item != nil {
		data.Item = item
	}
	return data, nil
}

// List handles GET /admin/releases.
func (h *ReleaseHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), model.ListFilter{})
	if err != nil {
		serverError(w, r, "release note list failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageReleasesList, view.Data{Title: "Release notes", Items: items})
}

// New handles GET /admin/releases/new.
func (h *ReleaseHandler) New(w http.ResponseWriter, r *http.Request) {
	data, err := h.formData(r, "New release note", nil)
	if err != nil {
		serverError(w, r, "software names failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageReleasesForm, data)
}

// Create handles POST /admin/releases/new.
func (h *ReleaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.svc.Create(r.Context(), releaseInput(r)); err != nil {
		data, derr := h.formData(r, "New release note", nil)
		if derr != nil {
			err = derr
		}
		h.formFailure(w, r, err, view.PageReleasesForm, data)
		return
	}
	redirect(w, r, releasesListPath)
}

// Quick handles POST /admin/releases/quick, the inline form on the software
// list. It creates through the same path as Create and returns to the
// software list.
func (h *ReleaseHandler) Quick(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.svc.Create(r.Context(), releaseInput(r)); err != nil {
		items, lerr := h.software.List(r.Context(), model.ListFilter{})
		if lerr != nil {
			err = lerr
		}
		h.formFailure(w, r, err, view.PageSoftwareList, view.Data{Title: "Software", Items: items})
		return
	}
	redirect(w, r, softwareListPath)
}

// Edit handles GET /admin/releases/{id}/edit.
func (h *ReleaseHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	item, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, r, "release note get failed", err)
		return
	}
	data, err := h.formData(r, "Edit release note", item)
	if err != nil {
		serverError(w, r, "software names failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageReleasesForm, data)
}

// Update handles POST /admin/releases/{id}/edit.
func (h *ReleaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.svc.Update(r.Context(), id, releaseInput(r)); err != nil {
		current, gerr := h.svc.Get(r.Context(), id)
		if gerr != nil {
			h.formFailure(w, r, gerr, view.PageReleasesForm, view.Data{})
			return
		}
		data, derr := h.formData(r, "Edit release note", current)
		if derr != nil {
			err = derr
		}
		h.formFailure(w, r, err, view.PageReleasesForm, data)
		return
	}
	redirect(w, r, releasesListPath)
}

// Delete handles POST /admin/releases/{id}/delete.
func (h *ReleaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		serverError(w, r, "release note delete failed", err)
		return
	}
	redirect(w, r, releasesListPath)
}
