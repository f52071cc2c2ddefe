package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/apperr"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/query"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/validator"
)

type ListProductsParams struct {
	Search   string
	Page     int
	PageSize int
}

type Summary struct {
	Total int `json:"total"`
	model.StatusCounts
}

type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ReplaceProduct(ctx context.Context, id string, input ProductInput) (model.Product, error)
	PatchProduct(ctx context.Context, id string, input ProductPatchInput) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, params ListProductsParams) (query.Page, error)
	Summary(ctx context.Context) (Summary, error)
}

// ProductStore is the part of the store the service drives.
type ProductStore interface {
	AddProduct(ctx context.Context, product model.Product) error
	PatchProduct(
		ctx context.Context,
		id string,
		patch model.ProductPatch,
		check func(merged model.Product) error,
	) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) bool
	Product(id string) (model.Product, bool)
	IsLoading() bool
}

type Options struct {
	// ValidateFutureETA rejects writes whose ETA is not after Now.
	ValidateFutureETA bool
	Now               func() time.Time
}

type productService struct {
	logger    *slog.Logger
	store     ProductStore
	queries   *query.Service
	validator validator.Validator
	opts      Options
}

func NewProductService(
	logger *slog.Logger,
	store ProductStore,
	queries *query.Service,
	validator validator.Validator,
	opts Options,
) ProductService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &productService{
		logger:    logger.With(slog.String("service", "product")),
		store:     store,
		queries:   queries,
		validator: validator,
		opts:      opts,
	}
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (model.Product, error) {
	if s.store.IsLoading() {
		return model.Product{}, apperr.StoreLoadingErr
	}

	if input.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
		}
		input.ID = id.String()
	}
	if input.Status == "" {
		input.Status = model.ProductStatusPending
	}

	if err := s.validate(input, true); err != nil {
		return model.Product{}, err
	}

	product := input.toModel(input.ID)
	if err := s.store.AddProduct(ctx, product); err != nil {
		return model.Product{}, fmt.Errorf("store add product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created", slog.String("product_id", product.ID))
	return product, nil
}

func (s *productService) GetProduct(_ context.Context, id string) (model.Product, error) {
	if s.store.IsLoading() {
		return model.Product{}, apperr.StoreLoadingErr
	}

	product, ok := s.store.Product(id)
	if !ok {
		return model.Product{}, notFound(id)
	}
	return product, nil
}

func (s *productService) ReplaceProduct(ctx context.Context, id string, input ProductInput) (model.Product, error) {
	if s.store.IsLoading() {
		return model.Product{}, apperr.StoreLoadingErr
	}

	if input.ID != "" && input.ID != id {
		return model.Product{}, apperr.ValidationErr.WithMsg("product id cannot be changed")
	}
	if err := s.validate(input, true); err != nil {
		return model.Product{}, err
	}

	product, err := s.store.PatchProduct(ctx, id, model.PatchFromProduct(input.toModel(id)), nil)
	if err != nil {
		return model.Product{}, fmt.Errorf("store replace product: %w", err)
	}

	s.logger.InfoContext(ctx, "product replaced", slog.String("product_id", id))
	return product, nil
}

func (s *productService) PatchProduct(ctx context.Context, id string, input ProductPatchInput) (model.Product, error) {
	if s.store.IsLoading() {
		return model.Product{}, apperr.StoreLoadingErr
	}

	patch := input.toModel()
	product, err := s.store.PatchProduct(ctx, id, patch, func(merged model.Product) error {
		return s.validate(inputFromModel(merged), patch.ETA != nil)
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("store patch product: %w", err)
	}

	s.logger.InfoContext(ctx, "product patched", slog.String("product_id", id))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if s.store.IsLoading() {
		return apperr.StoreLoadingErr
	}

	if !s.store.DeleteProduct(ctx, id) {
		return notFound(id)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

func (s *productService) ListProducts(_ context.Context, params ListProductsParams) (query.Page, error) {
	if s.store.IsLoading() {
		return query.Page{}, apperr.StoreLoadingErr
	}

	page, err := s.queries.Search(params.Search, params.Page, params.PageSize)
	if err != nil {
		return query.Page{}, fmt.Errorf("search products: %w", err)
	}
	return page, nil
}

func (s *productService) Summary(ctx context.Context) (Summary, error) {
	if s.store.IsLoading() {
		return Summary{}, apperr.StoreLoadingErr
	}

	total, counts := s.queries.Summary(ctx)
	return Summary{Total: total, StatusCounts: counts}, nil
}

// validate runs the struct rules and, when checkETA is set and the policy is on,
// requires the ETA to lie in the future.
func (s *productService) validate(input ProductInput, checkETA bool) error {
	if err := s.validator.Validate(input); err != nil {
		return fmt.Errorf("validate product: %w", err)
	}

	if checkETA && s.opts.ValidateFutureETA && !time.Unix(input.ETA, 0).After(s.opts.Now()) {
		return apperr.ValidationErr.WithMsg("eta must be in the future")
	}
	return nil
}

func notFound(id string) error {
	return apperr.ProductNotFoundErr.WrapParent(fmt.Errorf("product id %q", id))
}
