package postgres

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

func (db *DB) AddThread(ctx context.Context, thread *model.NewThread) (*model.AddedThread, error) {
	id := "thread-" + db.newID()

	var rowID, title, owner string
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO threads (id, title, body, owner, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, owner`,
		id, thread.Title, thread.Body, thread.Owner, time.Now().UTC(),
	).Scan(&rowID, &title, &owner)
	if err != nil {
		return nil, fmt.Errorf("postgres: adding thread: %w", err)
	}

	return model.NewAddedThread(model.Payload{"id": rowID, "title": title, "owner": owner})
}

func (db *DB) GetThreadDetailByID(ctx context.Context, id string) (*model.ThreadDetail, error) {
	var (
		threadID, title, body, username string
		date                            time.Time
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT threads.id, threads.title, threads.body, threads.date, users.username
		 FROM threads
		 INNER JOIN users ON threads.owner = users.id
		 WHERE threads.id = $1`,
		id,
	).Scan(&threadID, &title, &body, &date, &username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound(repository.MsgThreadNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting thread %s: %w", id, err)
	}

	return model.NewThreadDetail(model.Payload{
		"id":       threadID,
		"title":    title,
		"body":     body,
		"date":     repository.FormatDate(date),
		"username": username,
	})
}

func (db *DB) CheckThreadAvailability(ctx context.Context, id string) error {
	var found string
	err := db.conn.QueryRowContext(ctx, `SELECT id FROM threads WHERE id = $1`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(repository.MsgThreadNotFound)
	}
	if err != nil {
		return fmt.Errorf("postgres: checking thread %s: %w", id, err)
	}
	return nil
}
