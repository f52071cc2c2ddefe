package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/apperr"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/cli"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/persist"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/query"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/service"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/kv"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/store"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/validator"
)

const productJSON = `{
	"id": "p1",
	"title": "Laptops",
	"recipient": "Ada",
	"recipientPhone": "+2348000000000",
	"description": "two laptops",
	"origin": "Lagos",
	"destination": "Abuja",
	"eta": 1767225600,
	"packages": [{"name": "box", "weight": 3, "weightUnit": "kg", "quantity": 2, "quantityUnit": "pcs"}]
}`

type env struct {
	slot   *kv.MemorySlot
	stdout *bytes.Buffer
}

// runner builds a fresh session over slot, as each sd-cli invocation does.
func (e env) runner(t *testing.T, stdin io.Reader) *cli.Runner {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	adapter := persist.NewAdapter(logger, e.slot, persist.DefaultKey)
	st := store.New(logger, adapter)
	st.Hydrate(ctx, adapter)

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	q := query.New(logger, st, query.NewETAFormatter(time.UTC))
	svc := service.NewProductService(logger, st, q, v, service.Options{})

	e.stdout.Reset()
	return cli.NewRunner(svc, stdin, e.stdout, 10)
}

func newEnv() env {
	return env{slot: kv.NewMemorySlot(), stdout: &bytes.Buffer{}}
}

func TestRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("Should add from stdin and persist across sessions", func(t *testing.T) {
		e := newEnv()

		err := e.runner(t, strings.NewReader(productJSON)).Run(ctx, []string{"add", "--file", "-"})
		require.NoError(t, err)

		var added model.Product
		require.NoError(t, json.Unmarshal(e.stdout.Bytes(), &added))
		assert.Equal(t, "p1", added.ID)
		assert.Equal(t, model.ProductStatusPending, added.Status)

		require.NoError(t, e.runner(t, nil).Run(ctx, []string{"get", "p1"}))
		var got model.Product
		require.NoError(t, json.Unmarshal(e.stdout.Bytes(), &got))
		assert.Equal(t, added, got)
	})

	t.Run("Should add from a file", func(t *testing.T) {
		e := newEnv()
		path := filepath.Join(t.TempDir(), "product.json")
		require.NoError(t, os.WriteFile(path, []byte(productJSON), 0o600))

		require.NoError(t, e.runner(t, nil).Run(ctx, []string{"add", "-f", path}))
		assert.Contains(t, e.stdout.String(), `"id": "p1"`)
	})

	t.Run("Should change the status and summarize", func(t *testing.T) {
		e := newEnv()
		require.NoError(t, e.runner(t, strings.NewReader(productJSON)).Run(ctx, []string{"add", "-f", "-"}))

		require.NoError(t, e.runner(t, nil).Run(ctx, []string{"status", "p1", "DELIVERED"}))

		require.NoError(t, e.runner(t, nil).Run(ctx, []string{"summary"}))
		var summary map[string]int
		require.NoError(t, json.Unmarshal(e.stdout.Bytes(), &summary))
		assert.Equal(t, 1, summary["total"])
		assert.Equal(t, 1, summary["delivered"])
		assert.Equal(t, 0, summary["pending"])
	})

	t.Run("Should reject an unknown status", func(t *testing.T) {
		e := newEnv()
		require.NoError(t, e.runner(t, strings.NewReader(productJSON)).Run(ctx, []string{"add", "-f", "-"}))

		err := e.runner(t, nil).Run(ctx, []string{"status", "p1", "lost"})
		assert.True(t, validator.IsValidationError(err), "got %v", err)
	})

	t.Run("Should list with paging and a query", func(t *testing.T) {
		e := newEnv()
		require.NoError(t, e.runner(t, strings.NewReader(productJSON)).Run(ctx, []string{"add", "-f", "-"}))

		require.NoError(t, e.runner(t, nil).Run(ctx, []string{"list", "--query", "LAPTOP", "--page-size", "5"}))
		var page struct {
			Items    []model.Product `json:"items"`
			Total    int             `json:"total"`
			PageSize int             `json:"page_size"`
		}
		require.NoError(t, json.Unmarshal(e.stdout.Bytes(), &page))
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 5, page.PageSize)
		require.Len(t, page.Items, 1)

		err := e.runner(t, nil).Run(ctx, []string{"list", "--page", "0"})
		assert.ErrorIs(t, err, apperr.InvalidPageErr)
	})

	t.Run("Should delete and then report not found", func(t *testing.T) {
		e := newEnv()
		require.NoError(t, e.runner(t, strings.NewReader(productJSON)).Run(ctx, []string{"add", "-f", "-"}))

		require.NoError(t, e.runner(t, nil).Run(ctx, []string{"delete", "p1"}))
		assert.Equal(t, "deleted p1\n", e.stdout.String())

		err := e.runner(t, nil).Run(ctx, []string{"delete", "p1"})
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})

	t.Run("Should report usage errors", func(t *testing.T) {
		e := newEnv()
		tests := [][]string{
			nil,
			{"explode"},
			{"get"},
			{"status", "p1"},
			{"add"},
			{"list", "--nope"},
		}

		for _, args := range tests {
			err := e.runner(t, nil).Run(ctx, args)
			assert.ErrorIs(t, err, cli.ErrUsage, "%v", args)
		}
	})
}
