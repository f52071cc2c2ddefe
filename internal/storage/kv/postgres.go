package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/db"
)

var _ Slot = (*PostgresSlot)(nil)

// PostgresSlot stores slots in the storage_slots table created by the migrations.
type PostgresSlot struct {
	db db.DB
}

func NewPostgresSlot(db db.DB) *PostgresSlot {
	return &PostgresSlot{db: db}
}

func (s *PostgresSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM storage_slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select storage slot: %w", err)
	}
	return value, nil
}

func (s *PostgresSlot) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Exec(ctx, `
		INSERT INTO storage_slots (key, value, updated_at)
		VALUES (@key, @value, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value      = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, pgx.NamedArgs{
		"key":   key,
		"value": value,
	}); err != nil {
		return fmt.Errorf("upsert storage slot: %w", err)
	}
	return nil
}
