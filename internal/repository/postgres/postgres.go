// Package postgres implements the repository interfaces on PostgreSQL
// through github.com/lib/pq.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sakif/forum-api/internal/repository"
)

//go:embed schema.sql
var schema string

var _ repository.Store = (*DB)(nil)

// Config holds connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders c as a lib/pq keyword/value connection string.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

type DB struct {
	conn  *sql.DB
	newID repository.IDGenerator
}

// New connects to Postgres, verifies the connection and creates the schema
// if needed. newID may be nil.
func New(cfg Config, newID repository.IDGenerator) (*DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: connecting to %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: initializing schema: %w", err)
	}

	if newID == nil {
		newID = repository.NewXID
	}
	return &DB{conn: conn, newID: newID}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// truncate empties every table. Used by integration tests between cases.
func (db *DB) truncate(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `TRUNCATE comments, threads, users`)
	return err
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
