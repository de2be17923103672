package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

// CommentService implements adding and soft-deleting comments.
type CommentService struct {
	threads  repository.ThreadRepository
	comments repository.CommentRepository
	logger   *slog.Logger
}

func NewCommentService(threads repository.ThreadRepository, comments repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		threads:  threads,
		comments: comments,
		logger:   logger,
	}
}

// AddComment attaches a comment to an existing thread. payload carries
// content, threadId and owner.
//
// The thread is checked before the payload is validated, so a request
// against a missing thread reports NotFound even when its body is invalid.
// Nothing is written unless both checks pass.
func (s *CommentService) AddComment(ctx context.Context, payload model.Payload) (*model.AddedComment, error) {
	threadID := payload.String("threadId")

	if err := s.threads.CheckThreadAvailability(ctx, threadID); err != nil {
		return nil, s.storageError(err, "failed to check thread", "checking thread "+threadID,
			slog.String("thread_id", threadID))
	}

	comment, err := model.NewNewComment(payload)
	if err != nil {
		return nil, err
	}

	added, err := s.comments.AddComment(ctx, comment)
	if err != nil {
		return nil, s.storageError(err, "failed to add comment", "adding comment",
			slog.String("thread_id", threadID))
	}

	s.logger.Info("comment created",
		slog.String("id", added.ID),
		slog.String("thread_id", threadID),
		slog.String("owner", added.Owner),
	)
	return added, nil
}

// DeleteComment soft-deletes commentID after checking that it belongs to
// threadID and is owned by owner. Deleting an already deleted comment
// succeeds again.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, threadID, owner string) error {
	attrs := []any{
		slog.String("id", commentID),
		slog.String("thread_id", threadID),
	}

	if err := s.comments.VerifyCommentInThread(ctx, commentID, threadID); err != nil {
		return s.storageError(err, "failed to verify comment thread", "verifying comment "+commentID, attrs...)
	}

	if err := s.comments.VerifyCommentOwner(ctx, commentID, owner); err != nil {
		if errors.Is(err, apperror.ErrForbidden) {
			s.logger.Warn("comment delete refused",
				append(attrs, slog.String("owner", owner))...)
		}
		return s.storageError(err, "failed to verify comment owner", "verifying owner of comment "+commentID, attrs...)
	}

	if err := s.comments.DeleteCommentByID(ctx, commentID); err != nil {
		return s.storageError(err, "failed to delete comment", "deleting comment "+commentID, attrs...)
	}

	s.logger.Info("comment deleted", attrs...)
	return nil
}

// storageError passes domain errors through and logs and wraps the rest.
func (s *CommentService) storageError(err error, logMsg, wrapMsg string, attrs ...any) error {
	if isDomainError(err) {
		return err
	}
	s.logger.Error(logMsg, append(attrs, slog.String("error", err.Error()))...)
	return fmt.Errorf("%s: %w", wrapMsg, err)
}

// isDomainError reports whether err carries one of the apperror kinds.
func isDomainError(err error) bool {
	return errors.Is(err, apperror.ErrValidation) ||
		errors.Is(err, apperror.ErrNotFound) ||
		errors.Is(err, apperror.ErrForbidden) ||
		errors.Is(err, apperror.ErrConflict)
}
