// Package httpapi implements the HTTP surface of §6: GET /igdb/game/{id},
// POST /igdb/search, POST /igdb/metadata, POST /igdb/webhooks/{entity}/{method}.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/igdb-mirror/catalog-service/internal/query"
	"github.com/igdb-mirror/catalog-service/internal/validation"
	"github.com/igdb-mirror/catalog-service/internal/webhook"
)

// Server holds the router and the dependencies its handlers call into.
type Server struct {
	facade    *query.Facade
	ingress   *webhook.Ingress
	validator *validation.Validator
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer builds the HTTP server, wiring all routes.
func NewServer(facade *query.Facade, ingress *webhook.Ingress, logger *slog.Logger) *Server {
	s := &Server{
		facade:    facade,
		ingress:   ingress,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Secret"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/igdb", func(r chi.Router) {
		r.Get("/game/{id}", s.handleGetGame)
		r.Post("/search", s.handleSearch)
		r.Post("/metadata", s.handleGetMetadata)
		r.Post("/webhooks/{entity}/{method}", s.handleWebhook)
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
