// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// It is the default store: a single file (or ":memory:" in tests) with no
// separate database server. modernc.org/sqlite is a pure Go driver, so the
// binary builds without cgo.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/sakif/forum-api/internal/repository"
)

var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and implements the thread, comment and
// user repositories.
type DB struct {
	conn  *sql.DB
	newID repository.IDGenerator
}

// New opens the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/forum.db" → file-based database (persistent)
//   - ":memory:"      → in-memory database, lost on close
//
// newID supplies the random part of record IDs; nil means repository.NewXID.
func New(dbPath string, newID repository.IDGenerator) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each new connection to ":memory:" would be a separate empty database.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite. Comments and threads rely
	// on ON DELETE CASCADE.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	if newID == nil {
		newID = repository.NewXID
	}
	db := &DB{conn: conn, newID: newID}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate creates the schema. Every statement is idempotent, so it runs on
// each start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			fullname TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS threads (
			id    TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body  TEXT NOT NULL,
			date  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			owner TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
	`)
	if err != nil {
		return fmt.Errorf("creating threads table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id        TEXT PRIMARY KEY,
			content   TEXT NOT NULL,
			owner     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			thread_id TEXT NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
			date      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_thread_id ON comments(thread_id, date);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	// Soft delete flag, added after the comments table first shipped.
	if err := db.addColumnIfNotExists("comments", "is_delete",
		"BOOLEAN NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("adding is_delete to comments: %w", err)
	}

	return nil
}

// addColumnIfNotExists adds a column to a table only if it doesn't already exist.
func (db *DB) addColumnIfNotExists(table, column, definition string) error {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if count > 0 {
		return nil
	}
	_, err = db.conn.Exec(fmt.Sprintf(
		`ALTER TABLE %s ADD COLUMN %s %s`, table, column, definition,
	))
	return err
}
