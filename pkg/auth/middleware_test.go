package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubValidator struct {
	valid map[string]bool
}

func (s *stubValidator) Validate(_ context.Context, token string) error {
	if s.valid[token] {
		return nil
	}
	return errors.New("invalid_session")
}

var testSecret = SessionSecretBytes("test-secret-change-in-production-32")

func TestRequireAdmin_NoCookie_RedirectsToLogin(t *testing.T) {
	mw := RequireAdmin(&stubValidator{}, testSecret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/admin/software", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Errorf("expected Location=%s, got %q", LoginPath, loc)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestRequireAdmin_TamperedCookie_RedirectsToLogin(t *testing.T) {
	mw := RequireAdmin(&stubValidator{valid: map[string]bool{"tok": true}}, testSecret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	forged := SignToken("tok", SessionSecretBytes("some-other-secret"))
	req := httptest.NewRequest("POST", "/admin/software/1/delete", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: forged})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
}

func TestRequireAdmin_UnknownSession_ClearsCookie(t *testing.T) {
	mw := RequireAdmin(&stubValidator{}, testSecret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: SignToken("logged-out", testSecret)})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName() && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session cookie to be cleared")
	}
}

func TestRequireAdmin_ValidSession_CallsNextWithContext(t *testing.T) {
	mw := RequireAdmin(&stubValidator{valid: map[string]bool{"tok-1": true}}, testSecret)

	var got AdminContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = AdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin/software", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: SignToken("tok-1", testSecret)})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !got.Authenticated || got.Token != "tok-1" {
		t.Errorf("unexpected admin context: %+v", got)
	}
}

func TestAdminFromContext_ZeroWhenUnset(t *testing.T) {
	if a := AdminFromContext(context.Background()); a.Authenticated {
		t.Error("expected unauthenticated zero value")
	}
}
