package apperr

import "github.com/tuanvumaihuynh/shipment-dashboard/pkg/zerror"

const (
	ValidationErrorCode      = "VALIDATION_FAILED"
	InvalidPageErrorCode     = "INVALID_PAGE"
	ProductNotFoundCode      = "PRODUCT_NOT_FOUND"
	ProductAlreadyExistsCode = "PRODUCT_ALREADY_EXISTS"
	StoreLoadingCode         = "STORE_LOADING"
)

var (
	ValidationErr           = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	InvalidPageErr          = zerror.NewBadRequest(InvalidPageErrorCode, "page must be >= 1 and page size must be > 0")
	ProductNotFoundErr      = zerror.NewNotFound(ProductNotFoundCode, "product not found")
	ProductAlreadyExistsErr = zerror.NewConflict(ProductAlreadyExistsCode, "product with the same id already exists")
	StoreLoadingErr         = zerror.NewServiceUnavailable(StoreLoadingCode, "products are still loading")
)
