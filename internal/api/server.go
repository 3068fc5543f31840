// Package api exposes the intake pipeline over HTTP.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/loanpilot/loanpilot/internal/processor"
)

type Server struct {
	router *chi.Mux
	proc   *processor.Processor
	port   int
}

func NewServer(port int, proc *processor.Processor, allowedOrigins []string) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s := &Server{
		router: router,
		proc:   proc,
		port:   port,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/intake/status", s.status)

	router.Post("/api/chat", s.chat)
	router.Post("/api/eligibility", s.eligibility)
	router.Post("/api/upload", s.upload)
	router.Post("/api/decision", s.decide)
	router.Post("/api/generate-letter", s.generateLetter)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "loanpilot",
		"status":  "ready",
	})
}
