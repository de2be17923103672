package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

// AddUser inserts user and sets user.ID. A username collision that slips
// past VerifyAvailableUsername surfaces as apperror.ErrConflict.
func (db *DB) AddUser(ctx context.Context, user *model.User) error {
	user.ID = "user-" + db.newID()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password, fullname) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.Password, user.Fullname,
	)
	if isUniqueViolation(err) {
		return apperror.Conflict(repository.MsgUsernameTaken)
	}
	if err != nil {
		return fmt.Errorf("postgres: inserting user %s: %w", user.Username, err)
	}
	return nil
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password, fullname FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Fullname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound(repository.MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting user %s: %w", username, err)
	}
	return &u, nil
}

func (db *DB) VerifyAvailableUsername(ctx context.Context, username string) error {
	var taken bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("postgres: checking username %s: %w", username, err)
	}
	if taken {
		return apperror.Conflict(repository.MsgUsernameTaken)
	}
	return nil
}
