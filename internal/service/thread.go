// Package service contains the forum use cases.
//
// Layering:
//
//	Handler (HTTP)  → parses requests, writes responses
//	Service         → validates entities, enforces ordering and ownership rules
//	Repository      → reads/writes the store
//
// Services depend on repository interfaces only, so the same use case runs
// against SQLite, Postgres or the in-memory fakes used in tests. Errors of a
// known kind (apperror) pass through unchanged; anything else is a storage
// failure and gets logged and wrapped.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

// ThreadService implements thread creation and the thread detail read.
type ThreadService struct {
	threads  repository.ThreadRepository
	comments repository.CommentRepository
	logger   *slog.Logger
}

func NewThreadService(threads repository.ThreadRepository, comments repository.CommentRepository, logger *slog.Logger) *ThreadService {
	return &ThreadService{
		threads:  threads,
		comments: comments,
		logger:   logger,
	}
}

// AddThread validates payload ({title, body, owner}) and persists it.
// Titles are not required to be unique.
func (s *ThreadService) AddThread(ctx context.Context, payload model.Payload) (*model.AddedThread, error) {
	thread, err := model.NewNewThread(payload)
	if err != nil {
		return nil, err
	}

	added, err := s.threads.AddThread(ctx, thread)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error("failed to add thread",
			slog.String("owner", thread.Owner),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding thread: %w", err)
	}

	s.logger.Info("thread created",
		slog.String("id", added.ID),
		slog.String("owner", added.Owner),
	)
	return added, nil
}

// GetThreadDetail returns the thread with its comments in ascending date
// order. Deleted comments keep their position but have their content masked.
func (s *ThreadService) GetThreadDetail(ctx context.Context, threadID string) (*model.ThreadView, error) {
	detail, err := s.threads.GetThreadDetailByID(ctx, threadID)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error("failed to get thread",
			slog.String("id", threadID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("getting thread %s: %w", threadID, err)
	}

	rows, err := s.comments.GetCommentsByThreadID(ctx, threadID)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error("failed to list comments",
			slog.String("thread_id", threadID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing comments of thread %s: %w", threadID, err)
	}

	views := make([]model.CommentView, 0, len(rows))
	for _, row := range rows {
		comment, err := model.NewCommentDetail(row)
		if err != nil {
			return nil, err
		}
		views = append(views, comment.View())
	}

	return &model.ThreadView{ThreadDetail: *detail, Comments: views}, nil
}
