package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chatlens/relationship-analyzer/internal/config"
	"github.com/chatlens/relationship-analyzer/internal/web"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{config.AppConfig.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	// Chat exports run large; the body cap mirrors the client-side per-file
	// ceiling.
	maxBytes := int64(config.AppConfig.MaxRequestMB) * 1024 * 1024
	r.Use(middleware.RequestSize(maxBytes))

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", apiHandler.AnalyzeHandler)
		r.Get("/ping", apiHandler.PingHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	// Everything outside /api is the embedded marketing site.
	web.RegisterStaticRoutes(r)

	return r
}
