package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	greeting = "Hello World!"
	version  = "forum-api-v1.0.0"

	healthTimeout = 2 * time.Second
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RootHandler serves the unauthenticated informational routes.
type RootHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewRootHandler(db Pinger, logger *slog.Logger) *RootHandler {
	return &RootHandler{db: db, logger: logger}
}

type valueResponse struct {
	Value string `json:"value"`
}

// HandleIndex: GET /
func (h *RootHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, valueResponse{Value: greeting})
}

// HandleAbout: GET /about
func (h *RootHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, valueResponse{Value: version})
}

// HandleHealth answers "ok" while the store responds to a ping and 503
// otherwise.
func (h *RootHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
