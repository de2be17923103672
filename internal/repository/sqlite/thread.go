package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

var _ repository.ThreadRepository = (*DB)(nil)

// AddThread inserts a new thread and returns its id, title and owner.
func (db *DB) AddThread(ctx context.Context, thread *model.NewThread) (*model.AddedThread, error) {
	id := "thread-" + db.newID()
	now := time.Now().UTC()

	var row struct{ id, title, owner string }
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO threads (id, title, body, date, owner)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id, title, owner`,
		id,
		thread.Title,
		thread.Body,
		now,
		thread.Owner,
	).Scan(&row.id, &row.title, &row.owner)
	if err != nil {
		return nil, fmt.Errorf("sqlite: adding thread: %w", err)
	}

	return model.NewAddedThread(model.Payload{
		"id":    row.id,
		"title": row.title,
		"owner": row.owner,
	})
}

// GetThreadDetailByID returns the thread joined with its author's username.
func (db *DB) GetThreadDetailByID(ctx context.Context, id string) (*model.ThreadDetail, error) {
	var (
		threadID, title, body, username string
		date                            time.Time
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT t.id, t.title, t.body, t.date, u.username
		 FROM threads t
		 INNER JOIN users u ON t.owner = u.id
		 WHERE t.id = ?`,
		id,
	).Scan(&threadID, &title, &body, &date, &username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound(repository.MsgThreadNotFound)
		}
		return nil, fmt.Errorf("sqlite: getting thread %s: %w", id, err)
	}

	return model.NewThreadDetail(model.Payload{
		"id":       threadID,
		"title":    title,
		"body":     body,
		"date":     repository.FormatDate(date),
		"username": username,
	})
}

// CheckThreadAvailability returns apperror.ErrNotFound if no thread has the given id.
func (db *DB) CheckThreadAvailability(ctx context.Context, id string) error {
	var found string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM threads WHERE id = ?`, id,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NotFound(repository.MsgThreadNotFound)
		}
		return fmt.Errorf("sqlite: checking thread %s: %w", id, err)
	}
	return nil
}
