package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/coincollector-go/internal/httpapi/middleware"
	"github.com/mcoot/coincollector-go/internal/session"
	"github.com/mcoot/coincollector-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Manager *session.Manager
	Store   storage.Storage
}

// NewRouter creates the router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	wsHandler := NewWSHandler(cfg.Manager, cfg.Logger)
	matchHandler := NewMatchHandler(cfg.Store)

	r.Handle("/ws", wsHandler).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/matches", matchHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}", matchHandler.Get).Methods(http.MethodGet)

	return r
}
