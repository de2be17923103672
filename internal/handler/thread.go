// Package handler contains the HTTP layer: it decodes requests, calls the
// forum use cases and writes the response envelope. It knows nothing about
// storage.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/forum-api/internal/auth"
	"github.com/sakif/forum-api/internal/model"
)

// ThreadUseCases is the part of service.ThreadService the handler needs.
type ThreadUseCases interface {
	AddThread(ctx context.Context, payload model.Payload) (*model.AddedThread, error)
	GetThreadDetail(ctx context.Context, threadID string) (*model.ThreadView, error)
}

type ThreadHandler struct {
	threads   ThreadUseCases
	sanitizer *Sanitizer
	logger    *slog.Logger
}

func NewThreadHandler(threads ThreadUseCases, sanitizer *Sanitizer, logger *slog.Logger) *ThreadHandler {
	return &ThreadHandler{threads: threads, sanitizer: sanitizer, logger: logger}
}

// HandleCreate creates a thread owned by the authenticated user.
//
// HTTP: POST /threads
// REQUEST BODY: {"title": "...", "body": "..."}
// RESPONSE: 201 {"status":"success","data":{"addedThread":{"id","title","owner"}}}
//
// The owner always comes from the access token; an "owner" key in the body
// is overwritten.
func (h *ThreadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r, h.sanitizer)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	payload["owner"] = userID

	added, err := h.threads.AddThread(r.Context(), payload)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"addedThread": added})
}

// HandleGet returns a thread with its comments.
//
// HTTP: GET /threads/{threadId}
func (h *ThreadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadId")

	thread, err := h.threads.GetThreadDetail(r.Context(), threadID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"thread": thread})
}
