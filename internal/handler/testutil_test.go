package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/catalogcms/backend/internal/view"
	"github.com/catalogcms/backend/pkg/auth"
)

var testSecret = auth.SessionSecretBytes("handler-test-secret")

const testToken = "live-session-token"

// mockSessionValidator accepts testToken only.
type mockSessionValidator struct {
	calls int
}

func (m *mockSessionValidator) Validate(_ context.Context, token string) error {
	m.calls++
	if token == testToken {
		return nil
	}
	return errors.New("invalid_session")
}

func testViews(t *testing.T) *view.Renderer {
	t.Helper()
	v, err := view.New()
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	return v
}

// withSession attaches a signed session cookie for testToken.
func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: auth.SignToken(testToken, testSecret)})
	return req
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
