// Package web provides the embedded marketing pages so the server ships as a
// single binary.
package web

import (
	"embed"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed static/*
var staticFiles embed.FS

var pageRoutes = map[string]string{
	"/":             "index.html",
	"/features":     "features.html",
	"/faq":          "faq.html",
	"/help-center":  "help-center.html",
	"/how-it-works": "how-it-works.html",
	"/contact":      "contact.html",
}

// RegisterStaticRoutes mounts the informational pages on every non-API path.
// The API routes must be registered before calling this.
func RegisterStaticRoutes(r chi.Router) {
	for route, file := range pageRoutes {
		r.Get(route, servePage(file, http.StatusOK))
	}

	r.Get("/static/*", http.FileServer(http.FS(staticFiles)).ServeHTTP)

	notFound := servePage("404.html", http.StatusNotFound)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		notFound(w, req)
	})
}

func servePage(name string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := staticFiles.ReadFile("static/" + name)
		if err != nil {
			log.Printf("Error reading embedded page %s: %v", name, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(content)
	}
}
