package validator_test

import (
	"errors"
	"fmt"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/validator"
)

type item struct {
	Name   string              `validate:"required"`
	Weight float64             `validate:"gt=0"`
	Status model.ProductStatus `validate:"enum"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept a valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(item{Name: "box", Weight: 1, Status: model.ProductStatusPending}))
	})

	t.Run("Should report every failing field", func(t *testing.T) {
		err := v.Validate(item{Status: "lost"})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(fmt.Errorf("wrapped: %w", err)))

		var fieldErrs govalidator.ValidationErrors
		require.True(t, errors.As(err, &fieldErrs))

		messages := map[string]string{}
		for _, fe := range fieldErrs {
			messages[fe.Field()] = validator.ValidationErrorMessage(fe)
		}
		assert.Equal(t, map[string]string{
			"Name":   "field is required",
			"Weight": "must be greater than 0",
			"Status": "invalid enum value: lost",
		}, messages)
	})

	t.Run("Should not treat other errors as validation errors", func(t *testing.T) {
		assert.False(t, validator.IsValidationError(errors.New("boom")))
	})
}
