// Package view renders the admin and public HTML pages from embedded
// templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render.
const (
	PageLogin        = "login"
	PageSoftwareList = "software_list"
	PageSoftwareForm = "software_form"
	PageReleasesList = "releases_list"
	PageReleasesForm = "releases_form"
	PageIssuesList   = "issues_list"
	PageIssuesForm   = "issues_form"
	PageClientsList  = "clients_list"
	PageClientsForm  = "clients_form"
	PageReleaseNotes = "release_notes"
)

var adminPages = []string{
	PageLogin,
	PageSoftwareList, PageSoftwareForm,
	PageReleasesList, PageReleasesForm,
	PageIssuesList, PageIssuesForm,
	PageClientsList, PageClientsForm,
}

// Data is the template context. Item is nil on "new" forms.
type Data struct {
	Title         string
	Item          any
	Items         any
	SoftwareItems []model.SoftwareName
	Statuses      []string
	Error         string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"str":      derefString,
	"num":      derefInt,
	"inputDT":  formatInputDateTime,
	"showDate": formatDisplayDate,
	"isRef":    isRef,
	"excerpt":  excerpt,
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range adminPages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/admin_layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	t, err := template.New(PageReleaseNotes).Funcs(funcs).ParseFS(templateFS, "templates/public_layout.html", "templates/"+PageReleaseNotes+".html")
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", PageReleaseNotes, err)
	}
	r.pages[PageReleaseNotes] = t
	return r, nil
}

// Render writes page with the given status. The page is rendered into a
// buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the embedded stylesheet tree, rooted so that it can be
// served under /assets/admin/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprint(*n)
}

func formatInputDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04")
}

func formatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// isRef reports whether ref points at id; used to pre-select dropdowns.
func isRef(ref *int64, id int64) bool {
	return ref != nil && *ref == id
}

// excerpt trims long content for list pages.
func excerpt(s *string, n int) string {
	v := strings.TrimSpace(derefString(s))
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n]) + "…"
}
