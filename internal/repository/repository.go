// Package repository declares the storage contracts the services depend on.
// Implementations live in the sqlite and postgres sub-packages.
package repository

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/forum-api/internal/model"
)

// Messages carried by the errors the stores return. Clients see them as-is.
const (
	MsgThreadNotFound  = "thread not found"
	MsgCommentNotFound = "Comments not found."
	MsgLimitedAccess   = "Limited access!"
	MsgUserNotFound    = "user not found"
	MsgUsernameTaken   = "username tidak tersedia"

	DateLayout = "2006-01-02T15:04:05.000Z07:00"
)

// FormatDate renders a stored timestamp the way dates appear in payloads.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// IDGenerator returns a fresh unique token. Stores prefix it with the kind
// of record ("thread-", "comment-", "user-").
type IDGenerator func() string

// NewXID generates 20-character, time-sortable IDs.
func NewXID() string {
	return xid.New().String()
}

type ThreadRepository interface {
	AddThread(ctx context.Context, thread *model.NewThread) (*model.AddedThread, error)
	// GetThreadDetailByID returns apperror.ErrNotFound if the thread does not exist.
	GetThreadDetailByID(ctx context.Context, id string) (*model.ThreadDetail, error)
	// CheckThreadAvailability returns apperror.ErrNotFound if the thread does not exist.
	CheckThreadAvailability(ctx context.Context, id string) error
}

type CommentRepository interface {
	AddComment(ctx context.Context, comment *model.NewComment) (*model.AddedComment, error)
	// DeleteCommentByID soft-deletes the comment. It returns
	// apperror.ErrNotFound when no row matched.
	DeleteCommentByID(ctx context.Context, id string) error
	// GetCommentsByThreadID returns the raw comment rows of a thread joined
	// with their authors' usernames, oldest first. Each row carries the keys
	// id, username, date, content and is_delete.
	GetCommentsByThreadID(ctx context.Context, threadID string) ([]model.Payload, error)
	// VerifyCommentOwner returns apperror.ErrForbidden unless owner wrote the comment.
	VerifyCommentOwner(ctx context.Context, id, owner string) error
	// VerifyCommentInThread returns apperror.ErrNotFound unless the comment
	// exists in the given thread. Soft-deleted comments still exist.
	VerifyCommentInThread(ctx context.Context, id, threadID string) error
}

type UserRepository interface {
	AddUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// VerifyAvailableUsername returns apperror.ErrConflict if the username is taken.
	VerifyAvailableUsername(ctx context.Context, username string) error
}

// Store is everything a SQL adapter provides to the server.
type Store interface {
	ThreadRepository
	CommentRepository
	UserRepository
	Ping(ctx context.Context) error
	Close() error
}
