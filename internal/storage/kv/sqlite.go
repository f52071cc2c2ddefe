package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var _ Slot = (*SQLiteSlot)(nil)

// SQLiteSlot stores slots as rows of a single table in a SQLite database file.
type SQLiteSlot struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the slots table exists.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// a single writer keeps SQLite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS slots (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("init slots table: %w", err)
	}

	return db, nil
}

func NewSQLiteSlot(db *sql.DB) *SQLiteSlot {
	return &SQLiteSlot{db: db}
}

func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return value, nil
}

func (s *SQLiteSlot) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, `
	INSERT INTO slots (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (key) DO UPDATE SET
		value      = excluded.value,
		updated_at = excluded.updated_at;
	`, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}
