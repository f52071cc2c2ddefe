package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/kv"
)

func TestSlots(t *testing.T) {
	slots := map[string]func(t *testing.T) kv.Slot{
		"memory": func(t *testing.T) kv.Slot {
			return kv.NewMemorySlot()
		},
		"file": func(t *testing.T) kv.Slot {
			s, err := kv.NewFileSlot(filepath.Join(t.TempDir(), "slots"))
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) kv.Slot {
			db, err := kv.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "slots.db"))
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })
			return kv.NewSQLiteSlot(db)
		},
		"redis": func(t *testing.T) kv.Slot {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { client.Close() })
			return kv.NewRedisSlot(client, "test:")
		},
	}

	for name, newSlot := range slots {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("Should return ErrNotFound for an unknown key", func(t *testing.T) {
				s := newSlot(t)

				_, err := s.Get(ctx, "product-storage")
				assert.ErrorIs(t, err, kv.ErrNotFound)
			})

			t.Run("Should return the last written value", func(t *testing.T) {
				s := newSlot(t)

				require.NoError(t, s.Set(ctx, "product-storage", []byte(`{"a":1}`)))
				require.NoError(t, s.Set(ctx, "product-storage", []byte(`{"a":2}`)))

				got, err := s.Get(ctx, "product-storage")
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"a":2}`), got)
			})

			t.Run("Should keep keys independent", func(t *testing.T) {
				s := newSlot(t)

				require.NoError(t, s.Set(ctx, "one", []byte("1")))
				require.NoError(t, s.Set(ctx, "two", []byte("2")))

				got, err := s.Get(ctx, "one")
				require.NoError(t, err)
				assert.Equal(t, []byte("1"), got)
			})
		})
	}
}

func TestFileSlotRejectsPathKeys(t *testing.T) {
	s, err := kv.NewFileSlot(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Set(context.Background(), "../escape", []byte("x")))
	_, err = s.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestRedisSlotUsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := kv.NewRedisSlot(client, "sd:")
	require.NoError(t, s.Set(context.Background(), "product-storage", []byte("v")))

	got, err := mr.Get("sd:product-storage")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
