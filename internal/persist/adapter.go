package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/kv"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/store"
)

// DefaultKey is the slot the product collection is stored under.
const DefaultKey = "product-storage"

// CorruptSuffix names the slot an unreadable collection is copied to before it
// can be overwritten.
const CorruptSuffix = ".corrupt"

// ErrReadOnly is reported when a save is refused because the stored collection
// could not be read and could not be backed up.
var ErrReadOnly = errors.New("persisted products are unreadable, refusing to overwrite")

var tracer = otel.Tracer("internal/persist")

var _ store.Observer = (*Adapter)(nil)

// Adapter writes the product collection through to a single slot and reads it back on start.
// Neither direction returns errors: failures are logged and the in-memory collection stays
// authoritative.
type Adapter struct {
	logger *slog.Logger
	slot   kv.Slot
	key    string

	// readOnly is set while the slot holds data this process could neither read
	// nor back up.
	readOnly atomic.Bool
}

func NewAdapter(logger *slog.Logger, slot kv.Slot, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{
		logger: logger.With(slog.String("component", "persist"), slog.String("key", key)),
		slot:   slot,
		key:    key,
	}
}

// Load returns the persisted collection, or an empty one when the slot is missing or
// unreadable. Unreadable data is copied to <key>.corrupt first; if that copy cannot be
// made, or the slot cannot be read at all, later saves are refused so the stored
// records are not replaced.
func (a *Adapter) Load(ctx context.Context) []model.Product {
	products, err := a.load(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "error loading products, starting empty", slog.Any("error", err))
		return []model.Product{}
	}
	return products
}

func (a *Adapter) load(ctx context.Context) ([]model.Product, error) {
	b, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, kv.ErrNotFound) {
		a.readOnly.Store(false)
		a.logger.InfoContext(ctx, "no persisted products found")
		return []model.Product{}, nil
	}
	if err != nil {
		a.readOnly.Store(true)
		return nil, fmt.Errorf("slot get: %w", err)
	}

	products, version, err := Decode(b)
	if err != nil {
		a.backup(ctx, b)
		return nil, fmt.Errorf("decode: %w", err)
	}
	a.readOnly.Store(false)
	if version != Version {
		a.logger.WarnContext(ctx, "persisted products have an unexpected version",
			slog.Int("version", version))
	}

	a.logger.InfoContext(ctx, "loaded persisted products", slog.Int("count", len(products)))
	return products, nil
}

// Save serializes and writes the whole collection.
func (a *Adapter) Save(ctx context.Context, products []model.Product) {
	ctx, span := tracer.Start(ctx, "Adapter.Save",
		trace.WithAttributes(
			attribute.String("key", a.key),
			attribute.Int("products", len(products)),
		),
	)
	defer span.End()

	if err := a.save(ctx, products); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save products")
		a.logger.ErrorContext(ctx, "error saving products", slog.Any("error", err))
	}
}

// ReadOnly reports whether saves are currently refused.
func (a *Adapter) ReadOnly() bool {
	return a.readOnly.Load()
}

func (a *Adapter) backup(ctx context.Context, b []byte) {
	backupKey := a.key + CorruptSuffix
	if err := a.slot.Set(ctx, backupKey, b); err != nil {
		a.readOnly.Store(true)
		a.logger.ErrorContext(ctx, "error backing up unreadable products",
			slog.String("backup_key", backupKey), slog.Any("error", err))
		return
	}

	a.readOnly.Store(false)
	a.logger.WarnContext(ctx, "unreadable products backed up",
		slog.String("backup_key", backupKey), slog.Int("bytes", len(b)))
}

func (a *Adapter) save(ctx context.Context, products []model.Product) error {
	if a.readOnly.Load() {
		return ErrReadOnly
	}

	b, err := Encode(products)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := a.slot.Set(ctx, a.key, b); err != nil {
		return fmt.Errorf("slot set: %w", err)
	}
	return nil
}

// OnChange persists the collection after every store mutation.
func (a *Adapter) OnChange(ctx context.Context, change store.Change) {
	a.Save(ctx, change.Products)
}
