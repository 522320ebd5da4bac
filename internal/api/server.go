// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/nicodishanthj/Prodigen_phase1/internal/artifacts"
	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
	"github.com/nicodishanthj/Prodigen_phase1/internal/pipeline"
	"github.com/nicodishanthj/Prodigen_phase1/internal/sqlite"
)

type Server struct {
	router    chi.Router
	runner    *pipeline.Runner
	catalog   *sqlite.Store
	artifacts *artifacts.Store
}

// NewServer wires the HTTP surface over the pipeline runner. The catalog and
// artifact store are optional; analysis still works without them.
func NewServer(runner *pipeline.Runner, catalog *sqlite.Store, artifactStore *artifacts.Store) (*Server, error) {
	if runner == nil {
		return nil, fmt.Errorf("pipeline runner required")
	}
	logger := common.Logger()
	logger.Info("api: building server", "catalog", catalog != nil, "artifacts", artifactStore != nil)
	srv := &Server{
		router:    chi.NewRouter(),
		runner:    runner,
		catalog:   catalog,
		artifacts: artifactStore,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/analyze", s.handleAnalyze)
	s.router.Get("/v1/runs", s.handleRuns)
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := append([]common.LogEntry(nil), common.LogEntries()...)
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
