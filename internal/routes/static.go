package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Root-level files the PWA expects next to index.html.
var staticFilePrefixes = []string{"pwa-", "favicon", "manifest"}

// spaHandler serves a built single-page app: hashed assets from the
// assets directory, a handful of root-level files, and index.html for
// every other path so client-side routing keeps working on deep links.
func spaHandler(dir string) http.Handler {
	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(dir, "assets"))))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/assets/") {
			assets.ServeHTTP(w, r)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/")
		if hasStaticPrefix(name) {
			path := filepath.Join(dir, filepath.Clean("/"+name))
			if _, err := os.Stat(path); err == nil {
				http.ServeFile(w, r, path)
				return
			}
		}

		serveIndex(w, r, index)
	})
}

func hasStaticPrefix(name string) bool {
	for _, prefix := range staticFilePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// serveIndex writes index.html without the path canonicalization of
// http.ServeFile, which would redirect requests for /index.html.
func serveIndex(w http.ResponseWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}
