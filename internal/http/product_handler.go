package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/apperr"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/model"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/service"
)

const maxBodyBytes = 1 << 20

type productHandler struct {
	productSvc      service.ProductService
	defaultPageSize int
}

func newProductHandler(productSvc service.ProductService, defaultPageSize int) *productHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &productHandler{
		productSvc:      productSvc,
		defaultPageSize: defaultPageSize,
	}
}

type ListProductsResponse struct {
	Items    []model.Product `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), 1)
	if err != nil {
		return apperr.InvalidPageErr.WrapParent(fmt.Errorf("parse page: %w", err))
	}
	pageSize, err := intParam(q.Get("page_size"), h.defaultPageSize)
	if err != nil {
		return apperr.InvalidPageErr.WrapParent(fmt.Errorf("parse page_size: %w", err))
	}

	res, err := h.productSvc.ListProducts(r.Context(), service.ListProductsParams{
		Search:   q.Get("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	return writeJSON(w, http.StatusOK, ListProductsResponse{
		Items:    res.Items,
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	})
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var body service.ProductInput
	if err := decodeBody(w, r, &body); err != nil {
		return err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), body)
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	return writeJSON(w, http.StatusCreated, product)
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	product, err := h.productSvc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) ReplaceProduct(w http.ResponseWriter, r *http.Request) error {
	var body service.ProductInput
	if err := decodeBody(w, r, &body); err != nil {
		return err
	}

	product, err := h.productSvc.ReplaceProduct(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		return fmt.Errorf("product service replace product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) PatchProduct(w http.ResponseWriter, r *http.Request) error {
	var body service.ProductPatchInput
	if err := decodeBody(w, r, &body); err != nil {
		return err
	}

	product, err := h.productSvc.PatchProduct(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		return fmt.Errorf("product service patch product: %w", err)
	}

	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	if err := h.productSvc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *productHandler) GetSummary(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.productSvc.Summary(r.Context())
	if err != nil {
		return fmt.Errorf("product service summary: %w", err)
	}

	return writeJSON(w, http.StatusOK, summary)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("decode request body: %w", err))
	}
	return nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
