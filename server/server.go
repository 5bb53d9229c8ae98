// Package server exposes the HTTP surface: the listing endpoint, the
// single-entity endpoint, and health.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/nitevelour/liveapi/config"
	"github.com/nitevelour/liveapi/resolve"
	"github.com/nitevelour/liveapi/scan"
)

// apiVersion tags every response envelope so front-ends can tell which
// behavior generation they are talking to.
const apiVersion = "livefix5"

// Server wires the request pipelines behind the HTTP handlers.
type Server struct {
	cfg      *config.Config
	scanner  *scan.Scanner
	resolver *resolve.Resolver
}

// New builds a server over the given pipelines.
func New(cfg *config.Config, scanner *scan.Scanner, resolver *resolve.Resolver) *Server {
	return &Server{cfg: cfg, scanner: scanner, resolver: resolver}
}

// Handler returns the routed handler with request logging attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/live", s.handleLive)
	mux.HandleFunc("/api/performer", s.handlePerformer)
	return logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v with no-store cache headers. Live status changes
// constantly, so nothing this service returns may be cached.
func writeJSON(w http.ResponseWriter, code int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store, max-age=0")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", slog.Any("error", err))
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
