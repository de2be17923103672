package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

func (db *DB) AddComment(ctx context.Context, comment *model.NewComment) (*model.AddedComment, error) {
	id := "comment-" + db.newID()

	var rowID, content, owner string
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO comments (id, content, thread_id, owner, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, content, owner`,
		id, comment.Content, comment.ThreadID, comment.Owner, time.Now().UTC(),
	).Scan(&rowID, &content, &owner)
	if err != nil {
		return nil, fmt.Errorf("postgres: adding comment to thread %s: %w", comment.ThreadID, err)
	}

	return model.NewAddedComment(model.Payload{"id": rowID, "content": content, "owner": owner})
}

func (db *DB) DeleteCommentByID(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `UPDATE comments SET is_delete = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting comment %s: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(repository.MsgCommentNotFound)
	}
	return nil
}

func (db *DB) GetCommentsByThreadID(ctx context.Context, threadID string) ([]model.Payload, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT comments.id, users.username, comments.date, comments.content, comments.is_delete
		 FROM comments
		 INNER JOIN users ON comments.owner = users.id
		 WHERE comments.thread_id = $1
		 ORDER BY comments.date ASC, comments.id ASC`,
		threadID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing comments of thread %s: %w", threadID, err)
	}
	defer rows.Close()

	comments := make([]model.Payload, 0)
	for rows.Next() {
		var (
			id, username, content string
			date                  time.Time
			isDelete              bool
		)
		if err := rows.Scan(&id, &username, &date, &content, &isDelete); err != nil {
			return nil, fmt.Errorf("postgres: scanning comment row: %w", err)
		}
		comments = append(comments, model.Payload{
			"id":        id,
			"username":  username,
			"date":      repository.FormatDate(date),
			"content":   content,
			"is_delete": isDelete,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating comments: %w", err)
	}

	return comments, nil
}

func (db *DB) VerifyCommentOwner(ctx context.Context, id, owner string) error {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1 AND owner = $2)`,
		id, owner,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("postgres: verifying owner of comment %s: %w", id, err)
	}
	if !exists {
		return apperror.Forbidden(repository.MsgLimitedAccess)
	}
	return nil
}

func (db *DB) VerifyCommentInThread(ctx context.Context, id, threadID string) error {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1 AND thread_id = $2)`,
		id, threadID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("postgres: verifying comment %s in thread %s: %w", id, threadID, err)
	}
	if !exists {
		return apperror.NotFound(repository.MsgCommentNotFound)
	}
	return nil
}
