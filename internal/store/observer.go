package store

import (
	"context"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
)

// Op names the mutation that produced a Change.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one applied mutation.
type Change struct {
	Op        Op
	ProductID string
	// Product is the record after an add or update, and the removed record for a delete.
	Product model.Product
	// Products is the whole collection after the mutation. Observers must not modify it.
	Products []model.Product
}

// Observer is notified synchronously after every successful mutation, while the
// store still holds its write lock, so notifications arrive in mutation order.
type Observer interface {
	OnChange(ctx context.Context, change Change)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, change Change)

func (f ObserverFunc) OnChange(ctx context.Context, change Change) {
	f(ctx, change)
}

// Loader supplies the collection a store is hydrated from.
type Loader interface {
	Load(ctx context.Context) []model.Product
}
