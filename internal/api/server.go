// Package api provides the HTTP boundary for taskomat. It owns routing,
// CORS, and the outer JSON envelope; all command interpretation lives in
// the pipeline package.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskomat/taskomat/internal/app/pipeline"
	"github.com/taskomat/taskomat/internal/domain"
)

// HistoryReader serves the recent-batches view. Nil disables /history.
type HistoryReader interface {
	RecentBatches(limit int) ([]domain.CommandBatch, error)
}

// Server is the taskomat HTTP API server.
type Server struct {
	pipeline       *pipeline.Pipeline
	directory      domain.ProjectDirectory
	history        HistoryReader
	metricsEnabled bool
	version        string
}

// NewServer creates a new API server around the pipeline and its project
// directory.
func NewServer(p *pipeline.Pipeline, dir domain.ProjectDirectory) *Server {
	return &Server{pipeline: p, directory: dir, version: "0.1.0"}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHistory enables the /history endpoint backed by the given reader.
func (s *Server) SetHistory(h HistoryReader) { s.history = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	// Liveness for Railway/Render
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "taskomat is running",
		})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	r.Post("/add_task", s.handleAddTask)
	r.Get("/projects", s.handleProjects)

	if s.history != nil {
		r.Get("/history", s.handleHistory)
	}

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response tagged with its taxonomy kind.
func writeError(w http.ResponseWriter, status int, kind domain.ErrorKind, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"kind":    string(kind),
		},
	})
}

// corsMiddleware allows browser clients from any origin, matching the
// permissive policy of the service this replaces. Preflight requests are
// answered directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
