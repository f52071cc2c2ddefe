package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/apperr"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/http/apierr"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map coded errors to their status", func(t *testing.T) {
		tests := []struct {
			err  error
			code string
			want int
		}{
			{apperr.ProductNotFoundErr, apperr.ProductNotFoundCode, http.StatusNotFound},
			{apperr.ProductAlreadyExistsErr, apperr.ProductAlreadyExistsCode, http.StatusConflict},
			{apperr.InvalidPageErr, apperr.InvalidPageErrorCode, http.StatusBadRequest},
			{apperr.ValidationErr, apperr.ValidationErrorCode, http.StatusBadRequest},
			{apperr.StoreLoadingErr, apperr.StoreLoadingCode, http.StatusServiceUnavailable},
		}

		for _, tt := range tests {
			res := apierr.New(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.want, res.StatusCode, tt.code)
			assert.Equal(t, tt.code, res.Code)
		}
	})

	t.Run("Should list invalid fields", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		type body struct {
			Title string `json:"title" validate:"required"`
		}
		res := apierr.New(fmt.Errorf("validate: %w", v.Validate(body{})))

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.NotNil(t, res.Details)
		assert.Equal(t, []apierr.FieldError{{Field: "title", Message: "field is required"}}, *res.Details)
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		assert.Equal(t, apierr.InternalServerErr, apierr.New(errors.New("disk on fire")))
	})
}
