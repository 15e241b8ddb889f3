package handler

import (
	"errors"
	"net/http"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/view"
)

const softwareListPath = "/admin/software"

// SoftwareHandler はソフトウェア管理画面の HTTP ハンドラ
type SoftwareHandler struct {
	pages
	svc service.SoftwareService
}

// NewSoftwareHandler は SoftwareHandler を生成する
func NewSoftwareHandler(svc service.SoftwareService, views *view.Renderer) *SoftwareHandler {
	return &SoftwareHandler{pages: pages{views: views}, svc: svc}
}

func softwareInput(r *http.Request) (model.SoftwareInput, func()) {
	upload, closeUpload := formUpload(r, "image_file")
	return model.SoftwareInput{
		Name:               formValue(r, "name"),
		Slug:               formValue(r, "slug"),
		Category:           formValue(r, "category"),
		Description:        formValue(r, "description"),
		PriceOneTime:       formValue(r, "price_one_time"),
		PriceYearly:        formValue(r, "price_yearly"),
		IsFree:             formBool(r, "is_free", false),
		IsActive:           formBool(r, "is_active", true),
		DownloadURL:        formValue(r, "download_url"),
		PaymentLinkOneTime: formValue(r, "payment_link_onetime"),
		PaymentLinkYearly:  formValue(r, "payment_link_yearly"),
		SortOrder:          formValue(r, "sort_order"),
		Image:              upload,
		RemoveImage:        formBool(r, "remove_image", false),
	}, closeUpload
}

// List handles GET /admin/software.
func (h *SoftwareHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), model.ListFilter{})
	if err != nil {
		serverError(w, r, "software list failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageSoftwareList, view.Data{Title: "Software", Items: items})
}

// New handles GET /admin/software/new.
func (h *SoftwareHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageSoftwareForm, view.Data{Title: "New software"})
}

// Create handles POST /admin/software/new.
func (h *SoftwareHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	in, done := softwareInput(r)
	defer done()

	if _, err := h.svc.Create(r.Context(), in); err != nil {
		h.formFailure(w, r, err, view.PageSoftwareForm, view.Data{Title: "New software"})
		return
	}
	redirect(w, r, softwareListPath)
}

// Edit handles GET /admin/software/{id}/edit.
func (h *SoftwareHandler) Edit(w http.ResponseWriter, r *http.Request) {
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
		serverError(w, r, "software get failed", err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageSoftwareForm, view.Data{Title: "Edit software", Item: item})
}

// Update handles POST /admin/software/{id}/edit.
func (h *SoftwareHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := parseForm(r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	in, done := softwareInput(r)
	defer done()

	if _, err := h.svc.Update(r.Context(), id, in); err != nil {
		current, gerr := h.svc.Get(r.Context(), id)
		if gerr != nil {
			err = gerr
		}
		h.formFailure(w, r, err, view.PageSoftwareForm, view.Data{Title: "Edit software", Item: current})
		return
	}
	redirect(w, r, softwareListPath)
}

// Delete handles POST /admin/software/{id}/delete. Release notes that point
// at the row are left dangling.
func (h *SoftwareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		serverError(w, r, "software delete failed", err)
		return
	}
	redirect(w, r, softwareListPath)
}
