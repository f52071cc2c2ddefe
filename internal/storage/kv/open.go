package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/config"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/db"
)

// Backend is an opened slot together with the resources behind it.
type Backend struct {
	Slot Slot
	// Checkers report the health of the network stores behind Slot, if any.
	Checkers []db.HealthChecker
	// Close releases the underlying connections.
	Close func()
}

type redisChecker struct {
	client redis.UniversalClient
}

func (c redisChecker) IsHealthy(ctx context.Context) (bool, error) {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return false, fmt.Errorf("ping redis: %w", err)
	}
	return true, nil
}

// Open connects the slot backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.Storage, pg config.Postgres, rd config.Redis) (*Backend, error) {
	switch cfg.Driver {
	case config.StorageDriverMemory:
		return &Backend{Slot: NewMemorySlot(), Close: func() {}}, nil

	case config.StorageDriverFile:
		slot, err := NewFileSlot(cfg.FileDir)
		if err != nil {
			return nil, err
		}
		return &Backend{Slot: slot, Close: func() {}}, nil

	case config.StorageDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		sqlDB, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Slot:  NewSQLiteSlot(sqlDB),
			Close: func() { sqlDB.Close() }, //nolint:errcheck
		}, nil

	case config.StorageDriverRedis:
		client, err := NewRedisClient(ctx, rd)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Slot:     NewRedisSlot(client, rd.KeyPrefix),
			Checkers: []db.HealthChecker{redisChecker{client: client}},
			Close:    func() { client.Close() }, //nolint:errcheck
		}, nil

	case config.StorageDriverPostgres:
		pool, err := db.NewPgxPool(ctx, pg)
		if err != nil {
			return nil, fmt.Errorf("create pgx pool: %w", err)
		}
		client := db.NewClient(pool)
		return &Backend{
			Slot:     NewPostgresSlot(client),
			Checkers: []db.HealthChecker{client},
			Close:    pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
