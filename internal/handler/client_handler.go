package handler

import (
	"errors"
	"net/http"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/view"
)

const clientsListPath = "/admin/clients"

// ClientHandler は導入企業管理画面の HTTP ハンドラ
type ClientHandler struct {
	pages
	svc service.ClientService
}

func NewClientHandler(svc service.ClientService, views *view.Renderer) *ClientHandler {
	return &ClientHandler{pages: pages{views: views}, svc: svc}
}

// clientInput reads the client form. An unchecked active box means inactive.
func clientInput(r *http.Request) (model.ClientInput, func()) {
	upload, closeUpload := formUpload(r, "image_file")
	return model.ClientInput{
		Name:        formValue(r, "name"),
		Industry:    formValue(r, "industry"),
		City:        formValue(r, "city"),
		Website:     formValue(r, "website"),
		SortOrder:   formValue(r, "sort_order"),
		IsActive:    formBool(r, "is_active", false),
		Image:       upload,
		RemoveImage: formBool(r, "remove_image", false),
	}, closeUpload
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), model.ListFilter{})
	if err != nil {
		serverError(w, r, "client list failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageClientsList, view.Data{Title: "Clients", Items: items})
}

func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageClientsForm, view.Data{Title: "New client"})
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	in, done := clientInput(r)
	defer done()

	if _, err := h.svc.Create(r.Context(), in); err != nil {
		h.formFailure(w, r, err, view.PageClientsForm, view.Data{Title: "New client"})
		return
	}
	redirect(w, r, clientsListPath)
}

func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
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
		serverError(w, r, "client get failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageClientsForm, view.Data{Title: "Edit client", Item: item})
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	in, done := clientInput(r)
	defer done()

	if _, err := h.svc.Update(r.Context(), id, in); err != nil {
		current, gerr := h.svc.Get(r.Context(), id)
		if gerr != nil {
			err = gerr
		}
		h.formFailure(w, r, err, view.PageClientsForm, view.Data{Title: "Edit client", Item: current})
		return
	}
	redirect(w, r, clientsListPath)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		serverError(w, r, "client delete failed", err)
		return
	}
	redirect(w, r, clientsListPath)
}
