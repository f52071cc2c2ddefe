package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
)

func TestPackage_UnmarshalJSON(t *testing.T) {
	t.Run("Should read numbers", func(t *testing.T) {
		var p model.Package
		require.NoError(t, json.Unmarshal([]byte(`{"name":"box","weight":2.5,"weightUnit":"kg","quantity":3,"quantityUnit":"pcs"}`), &p))

		assert.Equal(t, model.Package{
			Name: "box", Weight: 2.5, WeightUnit: model.WeightUnitKg, Quantity: 3, QuantityUnit: model.QuantityUnitPcs,
		}, p)
	})

	t.Run("Should read numeric strings written by form inputs", func(t *testing.T) {
		var p model.Package
		require.NoError(t, json.Unmarshal([]byte(`{"name":"box","weight":"5","weightUnit":"lbs","quantity":" 2 ","quantityUnit":"boxes"}`), &p))

		assert.Equal(t, 5.0, p.Weight)
		assert.Equal(t, 2.0, p.Quantity)
		assert.Equal(t, model.WeightUnitLbs, p.WeightUnit)
		assert.Equal(t, model.QuantityUnitBoxes, p.QuantityUnit)
	})

	t.Run("Should read empty strings and null as zero", func(t *testing.T) {
		var p model.Package
		require.NoError(t, json.Unmarshal([]byte(`{"name":"","weight":"","quantity":null}`), &p))

		assert.Zero(t, p.Weight)
		assert.Zero(t, p.Quantity)
	})

	t.Run("Should reject text that is not a number", func(t *testing.T) {
		var p model.Package
		assert.Error(t, json.Unmarshal([]byte(`{"weight":"heavy"}`), &p))
	})

	t.Run("Should still encode numbers", func(t *testing.T) {
		b, err := json.Marshal(model.Package{Name: "box", Weight: 5, Quantity: 2})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"box","weight":5,"weightUnit":"","quantity":2,"quantityUnit":""}`, string(b))
	})
}
