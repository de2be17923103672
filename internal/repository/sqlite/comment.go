package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

var _ repository.CommentRepository = (*DB)(nil)

func (db *DB) AddComment(ctx context.Context, comment *model.NewComment) (*model.AddedComment, error) {
	id := "comment-" + db.newID()
	now := time.Now().UTC()

	var row struct{ id, content, owner string }
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO comments (id, content, thread_id, owner, date)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id, content, owner`,
		id,
		comment.Content,
		comment.ThreadID,
		comment.Owner,
		now,
	).Scan(&row.id, &row.content, &row.owner)
	if err != nil {
		return nil, fmt.Errorf("sqlite: adding comment to thread %s: %w", comment.ThreadID, err)
	}

	return model.NewAddedComment(model.Payload{
		"id":      row.id,
		"content": row.content,
		"owner":   row.owner,
	})
}

// DeleteCommentByID marks the comment as deleted. The row and its content
// stay in the table.
func (db *DB) DeleteCommentByID(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE comments SET is_delete = 1 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(repository.MsgCommentNotFound)
	}

	return nil
}

// GetCommentsByThreadID returns the thread's comments oldest first. Ties on
// date fall back to insertion order.
func (db *DB) GetCommentsByThreadID(ctx context.Context, threadID string) ([]model.Payload, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.id, u.username, c.date, c.content, c.is_delete
		 FROM comments c
		 INNER JOIN users u ON c.owner = u.id
		 WHERE c.thread_id = ?
		 ORDER BY c.date ASC, c.rowid ASC`,
		threadID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments of thread %s: %w", threadID, err)
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
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
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
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

func (db *DB) VerifyCommentOwner(ctx context.Context, id, owner string) error {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE id = ? AND owner = ?`,
		id, owner,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("sqlite: verifying owner of comment %s: %w", id, err)
	}
	if count == 0 {
		return apperror.Forbidden(repository.MsgLimitedAccess)
	}
	return nil
}

func (db *DB) VerifyCommentInThread(ctx context.Context, id, threadID string) error {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE id = ? AND thread_id = ?`,
		id, threadID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("sqlite: verifying comment %s in thread %s: %w", id, threadID, err)
	}
	if count == 0 {
		return apperror.NotFound(repository.MsgCommentNotFound)
	}
	return nil
}
