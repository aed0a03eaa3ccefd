package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router constructs the HTTP router for the service.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsHeaders)

	r.Get("/", s.rootHandler)
	r.Get("/version", s.versionHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Post("/transcript", s.transcriptHandler)
	})

	return r
}
