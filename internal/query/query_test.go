package query_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/apperr"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/query"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/store"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/ptr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func product(id string, status model.ProductStatus) model.Product {
	return model.Product{
		ID:          id,
		Title:       "Shipment " + id,
		Description: "contents of " + id,
		ETA:         1767225600, // 2026-01-01 00:00:00 UTC
		Status:      status,
		Packages:    []model.Package{model.NewPackage()},
	}
}

func seededStore(t *testing.T, products ...model.Product) *store.Store {
	t.Helper()
	s := store.New(discardLogger())
	for _, p := range products {
		require.NoError(t, s.AddProduct(context.Background(), p))
	}
	return s
}

func TestService_CountProducts(t *testing.T) {
	s := seededStore(t)
	q := query.New(discardLogger(), s, nil)
	assert.Equal(t, 0, q.CountProducts())

	for i := range 7 {
		require.NoError(t, s.AddProduct(context.Background(), product(fmt.Sprintf("p%d", i), model.ProductStatusPending)))
	}
	assert.Equal(t, 7, q.CountProducts())
}

func TestService_ProductsByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := seededStore(t,
		product("a", model.ProductStatusPending),
		product("b", model.ProductStatusPending),
		product("c", model.ProductStatusDelivered),
		product("d", model.ProductStatusCancelled),
		product("e", model.ProductStatus("bogus")),
	)
	q := query.New(logger, s, nil)

	counts := q.ProductsByStatus(context.Background())

	assert.Equal(t, model.StatusCounts{Pending: 2, Delivered: 1, Cancelled: 1}, counts)
	assert.Equal(t, q.CountProducts()-1, counts.Total())
	assert.Equal(t, 1, strings.Count(buf.String(), "invalid product status found"))
	assert.Contains(t, buf.String(), "status=bogus")
}

func TestService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("Should count the same products it buckets", func(t *testing.T) {
		s := seededStore(t,
			product("a", model.ProductStatusPending),
			product("b", model.ProductStatusDelivered),
			product("c", model.ProductStatus("bogus")),
		)
		q := query.New(discardLogger(), s, nil)

		total, counts := q.Summary(ctx)

		assert.Equal(t, 3, total)
		assert.Equal(t, model.StatusCounts{Pending: 1, Delivered: 1}, counts)
	})

	t.Run("Should stay consistent while products are added and removed", func(t *testing.T) {
		s := seededStore(t)
		q := query.New(discardLogger(), s, nil)

		done := make(chan struct{})
		var wg sync.WaitGroup
		wg.Go(func() {
			for i := 0; ; i++ {
				select {
				case <-done:
					return
				default:
				}
				id := fmt.Sprintf("p%d", i)
				_ = s.AddProduct(ctx, product(id, model.ProductStatusPending))
				if i%2 == 0 {
					s.DeleteProduct(ctx, id)
				}
			}
		})

		for range 500 {
			total, counts := q.Summary(ctx)
			require.Equal(t, total, counts.Total())
		}
		close(done)
		wg.Wait()
	})
}

func TestService_FetchProducts(t *testing.T) {
	var products []model.Product
	for i := range 23 {
		products = append(products, product(fmt.Sprintf("p%02d", i), model.ProductStatusPending))
	}
	s := seededStore(t, products...)
	q := query.New(discardLogger(), s, nil)

	t.Run("Should return everything in insertion order when the page is large enough", func(t *testing.T) {
		got, err := q.FetchProducts(1, 100)
		require.NoError(t, err)
		assert.Equal(t, products, got)
	})

	t.Run("Should reconstruct the collection across pages", func(t *testing.T) {
		for _, size := range []int{1, 4, 5, 10, 23} {
			pages := (len(products) + size - 1) / size
			var all []model.Product
			for page := 1; page <= pages; page++ {
				got, err := q.FetchProducts(page, size)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(got), size)
				all = append(all, got...)
			}
			assert.Equal(t, products, all, "page size %d", size)
		}
	})

	t.Run("Should return an empty page past the end", func(t *testing.T) {
		tests := []struct{ page, size int }{
			{4, 10},
			{24, 1},
			{1<<62 + 1, 4},
			{2, math.MaxInt},
			{math.MaxInt, math.MaxInt},
		}

		for _, tt := range tests {
			got, err := q.FetchProducts(tt.page, tt.size)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got, "page=%d size=%d", tt.page, tt.size)
		}
	})

	t.Run("Should return everything for a maximal page size", func(t *testing.T) {
		got, err := q.FetchProducts(1, math.MaxInt)
		require.NoError(t, err)
		assert.Len(t, got, len(products))
	})

	t.Run("Should clip the last page", func(t *testing.T) {
		got, err := q.FetchProducts(3, 10)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, "p20", got[0].ID)
	})

	t.Run("Should reject invalid arguments", func(t *testing.T) {
		_, err := q.FetchProducts(0, 10)
		assert.ErrorIs(t, err, apperr.InvalidPageErr)

		_, err = q.FetchProducts(1, 0)
		assert.ErrorIs(t, err, apperr.InvalidPageErr)
	})

	t.Run("Should reflect the latest mutation", func(t *testing.T) {
		s := seededStore(t, product("x", model.ProductStatusPending))
		q := query.New(discardLogger(), s, nil)

		s.DeleteProduct(context.Background(), "x")

		got, err := q.FetchProducts(1, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	s := store.New(discardLogger())
	q := query.New(discardLogger(), s, nil)

	require.NoError(t, s.AddProduct(ctx, product("p1", model.ProductStatusPending)))
	assert.Equal(t, 1, q.CountProducts())

	require.True(t, s.UpdateProduct(ctx, "p1", model.ProductPatch{Status: ptr.New(model.ProductStatusDelivered)}))
	assert.Equal(t, 1, q.ProductsByStatus(ctx).Delivered)

	require.True(t, s.DeleteProduct(ctx, "p1"))
	assert.Equal(t, 0, q.CountProducts())
}
