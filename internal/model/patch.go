package model

import "github.com/tuanvumaihuynh/shipment-dashboard/pkg/ptr"

// ProductPatch holds the fields of a partial update. Nil fields are left untouched.
// The id is not patchable.
type ProductPatch struct {
	Title          *string
	Recipient      *string
	RecipientPhone *string
	Description    *string
	Origin         *string
	Destination    *string
	ETA            *int64
	Status         *ProductStatus
	Packages       []Package
}

// PatchFromProduct builds a patch that overwrites every field of a product except its id.
func PatchFromProduct(p Product) ProductPatch {
	pkgs := p.Packages
	if pkgs == nil {
		pkgs = []Package{}
	}
	return ProductPatch{
		Title:          ptr.New(p.Title),
		Recipient:      ptr.New(p.Recipient),
		RecipientPhone: ptr.New(p.RecipientPhone),
		Description:    ptr.New(p.Description),
		Origin:         ptr.New(p.Origin),
		Destination:    ptr.New(p.Destination),
		ETA:            ptr.New(p.ETA),
		Status:         ptr.New(p.Status),
		Packages:       pkgs,
	}
}

// Apply shallow-merges the patch over p and returns the result.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Recipient != nil {
		p.Recipient = *pp.Recipient
	}
	if pp.RecipientPhone != nil {
		p.RecipientPhone = *pp.RecipientPhone
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Origin != nil {
		p.Origin = *pp.Origin
	}
	if pp.Destination != nil {
		p.Destination = *pp.Destination
	}
	if pp.ETA != nil {
		p.ETA = *pp.ETA
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Packages != nil {
		pkgs := make([]Package, len(pp.Packages))
		copy(pkgs, pp.Packages)
		p.Packages = pkgs
	}
	return p
}

// StatusCounts is the per-status tally of a collection.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// Total returns the sum of all buckets.
func (c StatusCounts) Total() int {
	return c.Pending + c.Delivered + c.Cancelled
}
