package model

import "fmt"

type ProductStatus string

const (
	ProductStatusPending   ProductStatus = "pending"
	ProductStatusDelivered ProductStatus = "delivered"
	ProductStatusCancelled ProductStatus = "cancelled"
)

// ProductStatuses lists the recognized statuses in display order.
var ProductStatuses = [...]ProductStatus{
	ProductStatusPending,
	ProductStatusDelivered,
	ProductStatusCancelled,
}

func (s ProductStatus) Validate() error {
	for _, v := range ProductStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("unknown product status: %q", string(s))
}

func (s ProductStatus) String() string {
	return string(s)
}

type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitLbs WeightUnit = "lbs"
)

func (u WeightUnit) Validate() error {
	switch u {
	case WeightUnitKg, WeightUnitLbs:
		return nil
	default:
		return fmt.Errorf("unknown weight unit: %q", string(u))
	}
}

type QuantityUnit string

const (
	QuantityUnitPcs   QuantityUnit = "pcs"
	QuantityUnitBoxes QuantityUnit = "boxes"
)

func (u QuantityUnit) Validate() error {
	switch u {
	case QuantityUnitPcs, QuantityUnitBoxes:
		return nil
	default:
		return fmt.Errorf("unknown quantity unit: %q", string(u))
	}
}
