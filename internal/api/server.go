// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"expvar"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/nicodishanthj/fitsight/internal/common"
	"github.com/nicodishanthj/fitsight/internal/reconcile"
	"github.com/nicodishanthj/fitsight/internal/sqlite"
)

// Server exposes a read-mostly JSON view of the insight store plus a trigger
// for the reconciliation sweep. It exists for local inspection; the CLI
// remains the primary interface.
type Server struct {
	router chi.Router
	store  *sqlite.Store
	engine *reconcile.Engine
}

func NewServer(store *sqlite.Store, engine *reconcile.Engine) (*Server, error) {
	if store == nil {
		return nil, errors.New("insight store required")
	}
	s := &Server{router: chi.NewRouter(), store: store, engine: engine}
	s.routes()
	return s, nil
}

// Router returns the HTTP handler for the server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/insights", s.handleListInsights)
	s.router.Get("/api/insights/{activityID}", s.handleGetInsight)
	s.router.Get("/api/logs", s.handleLogs)
	s.router.Get("/api/metrics", s.handleMetrics)
	s.router.Post("/api/sync", s.handleSync)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListInsights(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"insights": records, "count": len(records)})
}

func (s *Server) handleGetInsight(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "activityID")
	record, err := s.store.Get(r.Context(), activityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, errors.New("no insight for activity"))
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	expvar.Handler().ServeHTTP(w, r)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("engine not configured"))
		return
	}
	summary, err := s.engine.SyncMissing(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"synced":  summary.Synced,
		"skipped": summary.Skipped,
		"errors":  summary.Errors,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		common.Logger().Warn("api: encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
