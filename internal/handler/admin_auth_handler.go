package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/catalogcms/backend/internal/service"
	"github.com/catalogcms/backend/internal/view"
	"github.com/catalogcms/backend/pkg/auth"
)

// AdminHome is where a successful login and GET /admin land.
const AdminHome = "/admin/software"

// AdminAuthHandler serves the login form and logout.
type AdminAuthHandler struct {
	pages
	svc          service.AdminAuthService
	secret       []byte
	secureCookie bool
}

func NewAdminAuthHandler(svc service.AdminAuthService, views *view.Renderer, secret []byte, secureCookie bool) *AdminAuthHandler {
	return &AdminAuthHandler{pages: pages{views: views}, svc: svc, secret: secret, secureCookie: secureCookie}
}

// LoginPage handles GET /admin/login.
func (h *AdminAuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageLogin, view.Data{Title: "Login"})
}

// Login handles POST /admin/login. A failed attempt re-renders the form and
// sets no cookie.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	session, err := h.svc.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.render(w, r, http.StatusUnauthorized, view.PageLogin, view.Data{Title: "Login", Error: "Invalid credentials"})
		return
	}
	if err != nil {
		serverError(w, r, "admin login failed", err)
		return
	}
	auth.SetSessionCookie(w, session.Token, h.secret, session.ExpiresAt, h.secureCookie)
	redirect(w, r, AdminHome)
}

// Logout handles GET /admin/logout. The cookie is cleared even when the
// server-side row could not be removed.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.AdminFromContext(r.Context()).Token
	if token == "" {
		token, _ = auth.TokenFromRequest(r, h.secret)
	}
	if err := h.svc.Logout(r.Context(), token); err != nil {
		slog.Error("admin logout failed", "error", err)
	}
	auth.ClearSessionCookie(w)
	redirect(w, r, auth.LoginPath)
}

// Home handles GET /admin.
func (h *AdminAuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, AdminHome)
}
