package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/forum-api/internal/auth"
	"github.com/sakif/forum-api/internal/model"
)

// CommentUseCases is the part of service.CommentService the handler needs.
type CommentUseCases interface {
	AddComment(ctx context.Context, payload model.Payload) (*model.AddedComment, error)
	DeleteComment(ctx context.Context, commentID, threadID, owner string) error
}

type CommentHandler struct {
	comments  CommentUseCases
	sanitizer *Sanitizer
	logger    *slog.Logger
}

func NewCommentHandler(comments CommentUseCases, sanitizer *Sanitizer, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, sanitizer: sanitizer, logger: logger}
}

// HandleCreate adds a comment to a thread.
//
// HTTP: POST /threads/{threadId}/comments
// REQUEST BODY: {"content": "..."}
// RESPONSE: 201 {"status":"success","data":{"addedComment":{"id","content","owner"}}}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r, h.sanitizer)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	payload["owner"] = userID
	payload["threadId"] = chi.URLParam(r, "threadId")

	added, err := h.comments.AddComment(r.Context(), payload)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"addedComment": added})
}

// HandleDelete soft-deletes one of the caller's comments.
//
// HTTP: DELETE /threads/{threadId}/comments/{commentId}
// RESPONSE: 200 {"status":"success"}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	err := h.comments.DeleteComment(r.Context(),
		chi.URLParam(r, "commentId"),
		chi.URLParam(r, "threadId"),
		userID,
	)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Status: statusSuccess})
}
