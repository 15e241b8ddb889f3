package handler

import (
	"errors"
	"net/http"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/view"
)

const issuesListPath = "/admin/issues"

// IssueHandler serves the known-issue admin pages.
type IssueHandler struct {
	pages
	svc service.KnownIssueService
}

func NewIssueHandler(svc service.KnownIssueService, views *view.Renderer) *IssueHandler {
	return &IssueHandler{pages: pages{views: views}, svc: svc}
}

func issueInput(r *http.Request) model.KnownIssueInput {
	return model.KnownIssueInput{
		Title:     formValue(r, "title"),
		Status:    formValue(r, "status"),
		Content:   formValue(r, "content"),
		SortOrder: formValue(r, "sort_order"),
		IsActive:  formBool(r, "is_active", true),
	}
}

func issueForm(title string, item *model.KnownIssue) view.Data {
	data := view.Data{Title: title, Statuses: model.IssueStatuses}
	if item != nil {
		data.Item = item
	}
	return data
}

func (h *IssueHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), model.ListFilter{})
	if err != nil {
		serverError(w, r, "known issue list failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageIssuesList, view.Data{Title: "Known issues", Items: items})
}

func (h *IssueHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageIssuesForm, issueForm("New known issue", nil))
}

func (h *IssueHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.svc.Create(r.Context(), issueInput(r)); err != nil {
		h.formFailure(w, r, err, view.PageIssuesForm, issueForm("New known issue", nil))
		return
	}
	redirect(w, r, issuesListPath)
}

// Edit answers 404 when the issue does not exist.
func (h *IssueHandler) Edit(w http.ResponseWriter, r *http.Request) {
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
		serverError(w, r, "known issue get failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageIssuesForm, issueForm("Edit known issue", item))
}

func (h *IssueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := h.svc.Update(r.Context(), id, issueInput(r)); err != nil {
		current, gerr := h.svc.Get(r.Context(), id)
		if gerr != nil {
			err = gerr
		}
		h.formFailure(w, r, err, view.PageIssuesForm, issueForm("Edit known issue", current))
		return
	}
	redirect(w, r, issuesListPath)
}

func (h *IssueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		serverError(w, r, "known issue delete failed", err)
		return
	}
	redirect(w, r, issuesListPath)
}
