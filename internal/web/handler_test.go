package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bosswatch/internal/config"
	"bosswatch/internal/watch"
)

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()
	cfg := config.Default()
	svc := watch.NewService(cfg, nil, nil, nil)
	mux := http.NewServeMux()
	NewHandler(cfg, svc).SetupRoutes(mux)
	return mux
}

func TestHandleStatus(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body struct {
		Title     string `json:"title"`
		Phase     string `json:"phase"`
		Active    bool   `json:"active"`
		Condition string `json:"condition"`
		Interval  string `json:"interval"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.Title != "Mindustry" || body.Phase != "idle" || body.Active {
		t.Errorf("unexpected snapshot: %+v", body)
	}
	if body.Interval != "5s" {
		t.Errorf("interval = %q, want 5s", body.Interval)
	}
}

func TestHandleStatusRejectsPost(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/status", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleIndex(t *testing.T) {
	mux := testMux(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Mindustry") {
		t.Errorf("index page missing target title:\n%s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
