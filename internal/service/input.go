package service

import "github.com/tuanvumaihuynh/shipment-dashboard/internal/model"

// PackageInput is a package as submitted by a user.
type PackageInput struct {
	Name         string             `json:"name" validate:"required"`
	Weight       float64            `json:"weight" validate:"gt=0"`
	WeightUnit   model.WeightUnit   `json:"weightUnit" validate:"enum"`
	Quantity     float64            `json:"quantity" validate:"gt=0"`
	QuantityUnit model.QuantityUnit `json:"quantityUnit" validate:"enum"`
}

// ProductInput is a full product as submitted by a user. ID is optional on create.
type ProductInput struct {
	ID             string              `json:"id,omitempty" validate:"max=128"`
	Title          string              `json:"title" validate:"required"`
	Recipient      string              `json:"recipient" validate:"required"`
	RecipientPhone string              `json:"recipientPhone" validate:"required"`
	Description    string              `json:"description" validate:"required"`
	Origin         string              `json:"origin" validate:"required"`
	Destination    string              `json:"destination" validate:"required"`
	ETA            int64               `json:"eta" validate:"gt=0"`
	Status         model.ProductStatus `json:"status" validate:"enum"`
	Packages       []PackageInput      `json:"packages" validate:"min=1,dive"`
}

// ProductPatchInput carries the fields of a partial update; absent fields are nil.
type ProductPatchInput struct {
	Title          *string              `json:"title"`
	Recipient      *string              `json:"recipient"`
	RecipientPhone *string              `json:"recipientPhone"`
	Description    *string              `json:"description"`
	Origin         *string              `json:"origin"`
	Destination    *string              `json:"destination"`
	ETA            *int64               `json:"eta"`
	Status         *model.ProductStatus `json:"status"`
	Packages       []PackageInput       `json:"packages"`
}

func (in ProductInput) toModel(id string) model.Product {
	return model.Product{
		ID:             id,
		Title:          in.Title,
		Recipient:      in.Recipient,
		RecipientPhone: in.RecipientPhone,
		Description:    in.Description,
		Origin:         in.Origin,
		Destination:    in.Destination,
		ETA:            in.ETA,
		Status:         in.Status,
		Packages:       packagesToModel(in.Packages),
	}
}

func (in ProductPatchInput) toModel() model.ProductPatch {
	patch := model.ProductPatch{
		Title:          in.Title,
		Recipient:      in.Recipient,
		RecipientPhone: in.RecipientPhone,
		Description:    in.Description,
		Origin:         in.Origin,
		Destination:    in.Destination,
		ETA:            in.ETA,
		Status:         in.Status,
	}
	if in.Packages != nil {
		patch.Packages = packagesToModel(in.Packages)
	}
	return patch
}

func inputFromModel(p model.Product) ProductInput {
	pkgs := make([]PackageInput, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		pkgs = append(pkgs, PackageInput(pkg))
	}
	return ProductInput{
		ID:             p.ID,
		Title:          p.Title,
		Recipient:      p.Recipient,
		RecipientPhone: p.RecipientPhone,
		Description:    p.Description,
		Origin:         p.Origin,
		Destination:    p.Destination,
		ETA:            p.ETA,
		Status:         p.Status,
		Packages:       pkgs,
	}
}

func packagesToModel(in []PackageInput) []model.Package {
	pkgs := make([]model.Package, 0, len(in))
	for _, pkg := range in {
		pkgs = append(pkgs, model.Package(pkg))
	}
	return pkgs
}
