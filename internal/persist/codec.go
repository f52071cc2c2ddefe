package persist

import (
	"encoding/json"
	"fmt"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
)

// Version is written into every envelope. Older or newer versions are read as-is.
const Version = 0

type envelope struct {
	State   state `json:"state"`
	Version int   `json:"version"`
}

type state struct {
	Products []model.Product `json:"products"`
}

// Encode serializes products as {"state":{"products":[...]},"version":0}.
// A nil collection is written as an empty array.
func Encode(products []model.Product) ([]byte, error) {
	if products == nil {
		products = []model.Product{}
	}

	b, err := json.Marshal(envelope{
		State:   state{Products: products},
		Version: Version,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return b, nil
}

// Decode parses an envelope produced by Encode and returns its products and version.
func Decode(b []byte) ([]model.Product, int, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, 0, fmt.Errorf("unmarshal envelope: %w", err)
	}

	products := env.State.Products
	if products == nil {
		products = []model.Product{}
	}
	return products, env.Version, nil
}
