package auth

import (
	"context"
	"net/http"
)

type contextKey string

const adminKey contextKey = "admin"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// AdminContext describes the caller of an admin request. There is a single
// shared admin account, so it carries no identity beyond the session token.
type AdminContext struct {
	Authenticated bool
	Token         string
}

// AdminFromContext は context から AdminContext を取得する。未設定の場合はゼロ値を返す。
func AdminFromContext(ctx context.Context) AdminContext {
	v, _ := ctx.Value(adminKey).(AdminContext)
	return v
}

// WithAdmin は context に AdminContext をセットする
func WithAdmin(ctx context.Context, a AdminContext) context.Context {
	return context.WithValue(ctx, adminKey, a)
}

// SessionValidator checks that a server-side session exists and is live.
type SessionValidator interface {
	Validate(ctx context.Context, token string) error
}

// RequireAdmin gates admin routes. Requests without a valid session are
// redirected to the login page with 303 and an empty body; next is never
// called for them.
func RequireAdmin(v SessionValidator, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := TokenFromRequest(r, secret)
			if !ok {
				redirectToLogin(w, r)
				return
			}
			if err := v.Validate(r.Context(), token); err != nil {
				ClearSessionCookie(w)
				redirectToLogin(w, r)
				return
			}

			ctx := WithAdmin(r.Context(), AdminContext{Authenticated: true, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Location", LoginPath)
	w.WriteHeader(http.StatusSeeOther)
}
