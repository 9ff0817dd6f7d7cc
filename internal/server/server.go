// Package server exposes the processing pipeline over HTTP: batch upload,
// session polling and export download.
package server

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/belegflow/backend/internal/logger"
	"github.com/belegflow/backend/internal/processor"
	"github.com/belegflow/backend/internal/session"
)

// Server handles HTTP requests for document processing.
type Server struct {
	processor *processor.Processor
	sessions  *session.Store
	maxUpload int64
	mux       *http.ServeMux
	log       zerolog.Logger
}

// New creates a server with default settings.
func New(proc *processor.Processor, sessions *session.Store, log zerolog.Logger) *Server {
	s := &Server{
		processor: proc,
		sessions:  sessions,
		maxUpload: 50 << 20, // high-resolution phone photos
		mux:       http.NewServeMux(),
		log:       log.With().Str("component", "http").Logger(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/process", s.handleProcess)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleSession)
	s.mux.HandleFunc("GET /api/sessions/{id}/export", s.handleExport)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler wraps the mux with CORS for the browser frontend.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         3600,
	})
	return c.Handler(s.withRequestLogger(s.mux))
}

// withRequestLogger stores a request-scoped logger in the context so
// handlers log with the method and path attached.
func (s *Server) withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLog := s.log.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), reqLog)))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.withRequestLogger(s.mux).ServeHTTP(w, r)
}
