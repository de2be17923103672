package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// AddUser inserts user, assigning user.ID. user.Password must already be hashed.
func (db *DB) AddUser(ctx context.Context, user *model.User) error {
	user.ID = "user-" + db.newID()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password, fullname)
		 VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Password,
		user.Fullname,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Username, err)
	}

	return nil
}

// GetUserByUsername returns apperror.ErrNotFound if no user has that username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password, fullname
		 FROM users WHERE username = ?`,
		username,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Fullname,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound(repository.MsgUserNotFound)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", username, err)
	}

	return &u, nil
}

func (db *DB) VerifyAvailableUsername(ctx context.Context, username string) error {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("sqlite: checking username %s: %w", username, err)
	}
	if count > 0 {
		return apperror.Conflict(repository.MsgUsernameTaken)
	}
	return nil
}
