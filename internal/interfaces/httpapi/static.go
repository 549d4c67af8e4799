package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// registerStaticRoutes serves the bundled web pages. Paths that do not match a
// file fall back to index.html so the client-side router can take over.
func registerStaticRoutes(mux *http.ServeMux, staticDir string) {
	if strings.TrimSpace(staticDir) == "" {
		return
	}
	mux.Handle("/", spaHandler(staticDir))
}

func spaHandler(staticDir string) http.Handler {
	fileServer := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}
