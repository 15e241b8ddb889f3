package handler

import (
	"io/fs"
	"net/http"

	"github.com/catalogcms/backend/pkg/auth"
)

// Router bundles everything NewRouter wires onto the mux.
type Router struct {
	Health   *Handler
	API      *APIHandler
	Auth     *AdminAuthHandler
	Software *SoftwareHandler
	Releases *ReleaseHandler
	Issues   *IssueHandler
	Clients  *ClientHandler
	Public   *PublicHandler

	Sessions     auth.SessionValidator
	Secret       []byte
	LoginLimiter *RateLimiter

	UploadsDir  string
	AdminAssets fs.FS
	SiteDir     string
	ServeStatic bool
}

// crud is the handler set shared by every admin entity.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	New(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Edit(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// NewRouter builds the full handler chain:
// RequestLogger → SecurityHeaders → mux.
func NewRouter(rt Router) http.Handler {
	mux := http.NewServeMux()

	// 公開 API（認証不要）
	api := func(f http.HandlerFunc) http.Handler { return rt.Health.CORS(f) }
	mux.Handle("GET /api/health", api(rt.Health.Health))
	mux.Handle("GET /api/software.json", api(rt.API.Software))
	mux.Handle("GET /api/releases.json", api(rt.API.Releases))
	mux.Handle("GET /api/known_issues.json", api(rt.API.KnownIssues))
	mux.Handle("GET /api/clients.json", api(rt.API.Clients))
	mux.Handle("OPTIONS /api/", api(func(http.ResponseWriter, *http.Request) {}))

	// ログイン（認証不要、試行回数制限あり）
	mux.HandleFunc("GET /admin/login", rt.Auth.LoginPage)
	login := http.Handler(http.HandlerFunc(rt.Auth.Login))
	if rt.LoginLimiter != nil {
		login = rt.LoginLimiter.Middleware(login)
	}
	mux.Handle("POST /admin/login", login)

	// 管理画面（セッション必須）
	admin := auth.RequireAdmin(rt.Sessions, rt.Secret)
	wrap := func(f http.HandlerFunc) http.Handler { return admin(f) }

	mux.Handle("GET /admin", wrap(rt.Auth.Home))
	mux.Handle("GET /admin/{$}", wrap(rt.Auth.Home))
	mux.Handle("GET /admin/logout", wrap(rt.Auth.Logout))
	for entity, h := range map[string]crud{
		"software": rt.Software,
		"releases": rt.Releases,
		"issues":   rt.Issues,
		"clients":  rt.Clients,
	} {
		base := "/admin/" + entity
		mux.Handle("GET "+base, wrap(h.List))
		mux.Handle("GET "+base+"/new", wrap(h.New))
		mux.Handle("POST "+base+"/new", wrap(h.Create))
		mux.Handle("GET "+base+"/{id}/edit", wrap(h.Edit))
		mux.Handle("POST "+base+"/{id}/edit", wrap(h.Update))
		mux.Handle("POST "+base+"/{id}/delete", wrap(h.Delete))
	}
	mux.Handle("POST /admin/releases/quick", wrap(rt.Releases.Quick))
	// Anything else under /admin is authenticated before it can 404.
	mux.Handle("GET /admin/", admin(http.NotFoundHandler()))
	mux.Handle("POST /admin/", admin(http.NotFoundHandler()))

	// 公開ページ・静的ファイル
	mux.HandleFunc("GET /releases", rt.Public.ReleaseNotes)
	mux.HandleFunc("GET /releases.html", rt.Public.ReleaseNotes)
	if rt.UploadsDir != "" {
		mux.Handle("GET /assets/uploads/", Uploads(rt.UploadsDir))
	}
	if rt.AdminAssets != nil {
		mux.Handle("GET /assets/admin/", AdminAssets(rt.AdminAssets))
	}
	if rt.ServeStatic && rt.SiteDir != "" {
		mux.Handle("GET /", StaticSite(rt.SiteDir))
	}

	return RequestLogger(SecurityHeaders(mux))
}
