package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"bosswatch/internal/config"
	"bosswatch/internal/watch"
)

// Server exposes the watcher's read-only status snapshot over HTTP. It is a
// purely cosmetic surface: the tick loop never depends on it.
type Server struct {
	config  *config.Config
	handler *Handler
	server  *http.Server
}

// NewServer builds the status server around a running watch service.
func NewServer(cfg *config.Config, svc *watch.Service) *Server {
	handler := NewHandler(cfg, svc)
	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
	}
}

func (s *Server) Start() error {
	log.Printf("Starting status server on http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down status server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return s.server.Addr
}
