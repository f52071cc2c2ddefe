package query

import (
	"strings"
	"time"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
)

// ETALayout renders an ETA as day/month/year and 12-hour time.
const ETALayout = "02/01/2006 03:04 PM"

// ETAFormatter renders a Unix-seconds ETA for display and search.
type ETAFormatter func(eta int64) string

// NewETAFormatter formats ETAs with ETALayout in loc, or UTC when loc is nil.
func NewETAFormatter(loc *time.Location) ETAFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return func(eta int64) string {
		return time.Unix(eta, 0).In(loc).Format(ETALayout)
	}
}

// Filter keeps the products for which the lowercased term is a substring of the id,
// title, description, status or formatted ETA. An empty term keeps everything.
func Filter(products []model.Product, term string, formatETA ETAFormatter) []model.Product {
	term = strings.ToLower(term)
	if term == "" {
		return products
	}

	matches := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchProduct(p, term, formatETA) {
			matches = append(matches, p)
		}
	}
	return matches
}

func matchProduct(p model.Product, term string, formatETA ETAFormatter) bool {
	fields := [...]string{p.ID, p.Title, p.Description, string(p.Status)}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return formatETA != nil && strings.Contains(strings.ToLower(formatETA(p.ETA)), term)
}
