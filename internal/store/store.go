package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/apperr"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
)

// Store owns the canonical, insertion-ordered product collection. All writes go
// through AddProduct, UpdateProduct and DeleteProduct; reads get copies.
type Store struct {
	logger    *slog.Logger
	observers []Observer

	mu       sync.RWMutex
	products []model.Product

	loading atomic.Bool
}

// New creates an empty store notifying the given observers in order.
func New(logger *slog.Logger, observers ...Observer) *Store {
	return &Store{
		logger:    logger.With(slog.String("component", "store")),
		observers: observers,
		products:  []model.Product{},
	}
}

// AddProduct appends product to the end of the collection. The id must be set by the
// caller; an id that is already present is rejected and nothing changes.
func (s *Store) AddProduct(ctx context.Context, product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(product.ID) >= 0 {
		return apperr.ProductAlreadyExistsErr.WrapParent(fmt.Errorf("product id %q", product.ID))
	}

	product = product.Clone()
	s.products = append(s.products, product)

	s.logger.DebugContext(ctx, "product added", slog.String("product_id", product.ID))
	s.notify(ctx, Change{Op: OpAdd, ProductID: product.ID, Product: product.Clone()})

	return nil
}

// UpdateProduct merges the fields set in patch into the product with the given id.
// It reports whether a product matched; an unknown id changes nothing.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) bool {
	_, err := s.PatchProduct(ctx, id, patch, nil)
	return err == nil
}

// PatchProduct merges patch into the product with the given id and returns the stored
// result. When check is set it sees the merged product first and a non-nil error
// aborts the update. Lookup, check and write happen under one lock.
func (s *Store) PatchProduct(
	ctx context.Context,
	id string,
	patch model.ProductPatch,
	check func(merged model.Product) error,
) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Product{}, apperr.ProductNotFoundErr.WrapParent(fmt.Errorf("product id %q", id))
	}

	updated := patch.Apply(s.products[i])
	if check != nil {
		if err := check(updated.Clone()); err != nil {
			return model.Product{}, err
		}
	}
	s.products[i] = updated

	s.logger.DebugContext(ctx, "product updated", slog.String("product_id", id))
	s.notify(ctx, Change{Op: OpUpdate, ProductID: id, Product: updated.Clone()})

	return updated.Clone(), nil
}

// DeleteProduct removes the first product with the given id and reports whether one was found.
func (s *Store) DeleteProduct(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	removed := s.products[i]
	products := make([]model.Product, 0, len(s.products)-1)
	products = append(products, s.products[:i]...)
	s.products = append(products, s.products[i+1:]...)

	s.logger.DebugContext(ctx, "product deleted", slog.String("product_id", id))
	s.notify(ctx, Change{Op: OpDelete, ProductID: id, Product: removed})

	return true
}

// Products returns a copy of the collection in insertion order.
func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.CloneProducts(s.products)
}

// Product returns a copy of the product with the given id.
func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Product{}, false
	}
	return s.products[i].Clone(), true
}

// Len returns the number of products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}

// SetLoading sets the transient busy flag. It is never persisted.
func (s *Store) SetLoading(loading bool) {
	s.loading.Store(loading)
}

// IsLoading reports whether the store is being hydrated.
func (s *Store) IsLoading() bool {
	return s.loading.Load()
}

// Hydrate replaces the collection with the one returned by loader, verbatim.
// The store reports loading for the duration. Observers are not notified.
func (s *Store) Hydrate(ctx context.Context, loader Loader) {
	s.SetLoading(true)
	defer s.SetLoading(false)

	products := model.CloneProducts(loader.Load(ctx))

	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			s.logger.WarnContext(ctx, "duplicate product id in loaded data",
				slog.String("product_id", p.ID))
		}
		seen[p.ID] = struct{}{}
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "store hydrated", slog.Int("count", len(products)))
}

// indexOf returns the position of the first product with id, or -1. Callers hold mu.
func (s *Store) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// notify runs the observers with a snapshot of the collection. Callers hold mu.
func (s *Store) notify(ctx context.Context, change Change) {
	if len(s.observers) == 0 {
		return
	}

	change.Products = model.CloneProducts(s.products)
	for _, o := range s.observers {
		o.OnChange(ctx, change)
	}
}
