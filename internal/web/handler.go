package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"bosswatch/internal/config"
	"bosswatch/internal/watch"
)

type Handler struct {
	config  *config.Config
	watcher *watch.Service
	started time.Time
}

func NewHandler(cfg *config.Config, svc *watch.Service) *Handler {
	return &Handler{
		config:  cfg,
		watcher: svc,
		started: time.Now(),
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", h.handleStatus)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/", h.handleIndex)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := h.watcher.Status()
	resp := struct {
		watch.Status
		Interval string `json:"interval"`
		Uptime   string `json:"uptime"`
	}{
		Status:   status,
		Interval: h.config.Watch.Interval.String(),
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}

	h.writeJSON(w, resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	status := h.watcher.Status()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "bosswatch - watching %q\n", status.Title)
	fmt.Fprintf(w, "phase:     %s\n", status.Phase)
	fmt.Fprintf(w, "active:    %v\n", status.Active)
	fmt.Fprintf(w, "condition: %s\n", status.Condition)
	fmt.Fprintf(w, "ticks:     %d (%d missed)\n", status.TicksTotal, status.TicksMissed)
	fmt.Fprintf(w, "waves:     %d seen, %d notified\n", status.WavesSeen, status.NotificationsSent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
