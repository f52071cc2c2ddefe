package model

// Product is a tracked shipment record.
type Product struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Recipient      string        `json:"recipient"`
	RecipientPhone string        `json:"recipientPhone"`
	Description    string        `json:"description"`
	Origin         string        `json:"origin"`
	Destination    string        `json:"destination"`
	ETA            int64         `json:"eta"`
	Status         ProductStatus `json:"status"`
	Packages       []Package     `json:"packages"`
}

// Package is a line item of a shipment. It has no identity of its own.
type Package struct {
	Name         string       `json:"name"`
	Weight       float64      `json:"weight"`
	WeightUnit   WeightUnit   `json:"weightUnit"`
	Quantity     float64      `json:"quantity"`
	QuantityUnit QuantityUnit `json:"quantityUnit"`
}

// NewPackage returns the blank package a new shipment starts with.
func NewPackage() Package {
	return Package{
		WeightUnit:   WeightUnitKg,
		QuantityUnit: QuantityUnitPcs,
	}
}

// NewProduct returns a pending product with the given id and one blank package.
func NewProduct(id string) Product {
	return Product{
		ID:       id,
		Status:   ProductStatusPending,
		Packages: []Package{NewPackage()},
	}
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	if p.Packages != nil {
		pkgs := make([]Package, len(p.Packages))
		copy(pkgs, p.Packages)
		p.Packages = pkgs
	}
	return p
}

// CloneProducts deep copies a collection. A nil input yields an empty, non-nil slice.
func CloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
