package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wires the repository and config into an HTTP handler.
type Server struct {
	cfg  *Config
	repo Repository
}

// NewServer constructs the lectiod server with its dependencies injected.
func NewServer(cfg *Config, repo Repository) *Server {
	return &Server{cfg: cfg, repo: repo}
}

// Routes builds the full route tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleHealth)
	r.Post("/v1/tokens", s.handleIssueToken)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/v1/entitlement", s.handleEntitlement)

		// Annotation writes are premium-gated server-side as well; the
		// client checks first, but the mirror does not trust it.
		r.Group(func(r chi.Router) {
			r.Use(s.requirePremium)
			r.Post("/v1/bookmarks", s.handleCreateBookmark)
			r.Delete("/v1/bookmarks/{id}", s.handleDeleteBookmark)
			r.Post("/v1/highlights", s.handleCreateHighlight)
			r.Post("/v1/notes", s.handleCreateNote)
		})
	})

	return r
}

// HTTPServer returns a configured *http.Server for the route tree.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
