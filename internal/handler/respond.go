package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/catalogcms/backend/internal/model"
	"github.com/catalogcms/backend/internal/repository"
	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/view"
)

// maxFormMemory bounds the in-memory part of a multipart form; larger
// uploads spill to temporary files.
const maxFormMemory = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "request_id", RequestIDFromContext(r.Context()), "path", r.URL.Path)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// pathID reads the {id} path segment. Only plain decimal digits are accepted.
func pathID(r *http.Request) (int64, bool) {
	s := r.PathValue("id")
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseForm handles both urlencoded and multipart submissions.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func formValue(r *http.Request, name string) string {
	return r.PostForm.Get(name)
}

// formBool reads a checkbox. Forms send a hidden "0" before the checkbox so
// the last value wins; def applies when the field is missing entirely.
func formBool(r *http.Request, name string, def bool) bool {
	vals := r.PostForm[name]
	if len(vals) == 0 {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(vals[len(vals)-1])) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// formUpload opens the named file field. It returns nil when no file was
// chosen. The returned closer is always safe to call.
func formUpload(r *http.Request, name string) (*model.Upload, func()) {
	noop := func() {}
	if r.MultipartForm == nil {
		return nil, noop
	}
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 || headers[0].Filename == "" {
		return nil, noop
	}
	f, err := headers[0].Open()
	if err != nil {
		slog.Warn("open uploaded file failed", "error", err, "field", name)
		return nil, noop
	}
	return &model.Upload{Filename: headers[0].Filename, Data: f}, closeFunc(f)
}

func closeFunc(f multipart.File) func() {
	return func() { _ = f.Close() }
}

// pages renders admin views and maps service errors onto responses.
type pages struct {
	views *view.Renderer
}

func (p pages) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.Data) {
	if err := p.views.Render(w, status, page, data); err != nil {
		serverError(w, r, "render failed", err)
	}
}

// formFailure re-renders the form on a validation error, answers 404 for a
// missing record and 500 otherwise.
func (p pages) formFailure(w http.ResponseWriter, r *http.Request, err error, page string, data view.Data) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		data.Error = verr.Message
		p.render(w, r, http.StatusBadRequest, page, data)
	case errors.Is(err, repository.ErrNotFound):
		http.NotFound(w, r)
	default:
		serverError(w, r, "save failed", err)
	}
}
