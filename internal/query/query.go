// Package query derives read-only views from the product store. Every call reads the
// live collection; nothing is cached.
package query

import (
	"context"
	"log/slog"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/apperr"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
)

// Source is the read side of the product store.
type Source interface {
	Products() []model.Product
	Len() int
}

type Service struct {
	logger    *slog.Logger
	src       Source
	formatETA ETAFormatter
}

// New creates a query service over src. A nil formatETA uses the default layout in UTC.
func New(logger *slog.Logger, src Source, formatETA ETAFormatter) *Service {
	if formatETA == nil {
		formatETA = NewETAFormatter(nil)
	}
	return &Service{
		logger:    logger.With(slog.String("component", "query")),
		src:       src,
		formatETA: formatETA,
	}
}

// CountProducts returns the size of the collection.
func (s *Service) CountProducts() int {
	return s.src.Len()
}

// ProductsByStatus tallies products per recognized status. Products with any other
// status are left out of every bucket and logged as a data-integrity warning.
func (s *Service) ProductsByStatus(ctx context.Context) model.StatusCounts {
	return s.countByStatus(ctx, s.src.Products())
}

// Summary returns the collection size and its status tallies taken from one snapshot.
func (s *Service) Summary(ctx context.Context) (int, model.StatusCounts) {
	products := s.src.Products()
	return len(products), s.countByStatus(ctx, products)
}

func (s *Service) countByStatus(ctx context.Context, products []model.Product) model.StatusCounts {
	var counts model.StatusCounts
	for _, p := range products {
		switch p.Status {
		case model.ProductStatusPending:
			counts.Pending++
		case model.ProductStatusDelivered:
			counts.Delivered++
		case model.ProductStatusCancelled:
			counts.Cancelled++
		default:
			s.logger.WarnContext(ctx, "invalid product status found",
				slog.String("product_id", p.ID),
				slog.String("status", string(p.Status)),
			)
		}
	}
	return counts
}

// FetchProducts returns one page of the collection in insertion order.
func (s *Service) FetchProducts(page, pageSize int) ([]model.Product, error) {
	return Paginate(s.src.Products(), page, pageSize)
}

// Page is a slice of a filtered collection.
type Page struct {
	Items    []model.Product
	Total    int
	Page     int
	PageSize int
}

// Search filters the whole collection by term and only then paginates the matches.
func (s *Service) Search(term string, page, pageSize int) (Page, error) {
	matches := Filter(s.src.Products(), term, s.formatETA)

	items, err := Paginate(matches, page, pageSize)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Items:    items,
		Total:    len(matches),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Paginate returns products[(page-1)*pageSize : page*pageSize], clipped to the
// collection. A page past the end yields an empty slice.
func Paginate(products []model.Product, page, pageSize int) ([]model.Product, error) {
	if page < 1 || pageSize < 1 {
		return nil, apperr.InvalidPageErr
	}

	// compare page indexes before multiplying so huge pages cannot wrap around
	if len(products) == 0 || page-1 > (len(products)-1)/pageSize {
		return []model.Product{}, nil
	}

	start := (page - 1) * pageSize
	end := start + min(pageSize, len(products)-start)

	return products[start:end:end], nil
}
