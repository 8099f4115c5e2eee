// File path: internal/api/server_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/nicodishanthj/fitsight/internal/sqlite"
)

func testServer(t *testing.T) (*Server, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.OpenWithConfig(sqlite.Config{Path: filepath.Join(t.TempDir(), "insights.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	server, err := NewServer(store, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server, store
}

func TestListInsights(t *testing.T) {
	server, store := testServer(t)
	if err := store.Upsert(context.Background(), sqlite.InsightRecord{ActivityID: "100", ActivityName: "Run", Insight: "x"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Count    int                    `json:"count"`
		Insights []sqlite.InsightRecord `json:"insights"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Count != 1 || len(payload.Insights) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestGetInsightNotFound(t *testing.T) {
	server, _ := testServer(t)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights/999", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSyncWithoutEngine(t *testing.T) {
	server, _ := testServer(t)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sync", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
