package handler

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// privatePrefixes are never served from the site directory even though they
// live under it. assets/data holds the seed database.
var privatePrefixes = []string{"/assets/data/"}

// noListing hides directory indexes.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Uploads serves the public uploads directory under /assets/uploads/.
func Uploads(dir string) http.Handler {
	return http.StripPrefix("/assets/uploads/", noListing(http.FileServer(http.Dir(dir))))
}

// AdminAssets serves the embedded admin stylesheet under /assets/admin/.
func AdminAssets(fsys fs.FS) http.Handler {
	return http.StripPrefix("/assets/admin/", noListing(http.FileServerFS(fsys)))
}

// StaticSite serves the public site from dir. A directory path answers with
// its index.html when there is one and 404 otherwise. Dotfiles and private
// prefixes answer 404.
func StaticSite(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		for _, prefix := range privatePrefixes {
			if strings.HasPrefix(p, prefix) {
				http.NotFound(w, r)
				return
			}
		}
		for _, seg := range strings.Split(p, "/") {
			if strings.HasPrefix(seg, ".") {
				http.NotFound(w, r)
				return
			}
		}
		if strings.HasSuffix(p, "/") && p != "/" && !hasIndex(dir, p) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// hasIndex reports whether the directory at urlPath below dir holds a
// regular index.html file.
func hasIndex(dir, urlPath string) bool {
	rel := filepath.FromSlash(path.Clean("/" + urlPath))
	info, err := os.Stat(filepath.Join(dir, rel, "index.html"))
	return err == nil && info.Mode().IsRegular()
}
