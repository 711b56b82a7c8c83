package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hoodlab-backend/internal/domains/product"
	"hoodlab-backend/internal/domains/product/model"
	"hoodlab-backend/internal/domains/product/service"
	"hoodlab-backend/internal/shared/response"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List - GET /api/v1/products (public, chỉ active)
func (h *ProductHandler) List(c *gin.Context) {
	var q model.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "INVALID_QUERY", "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

// AdminList - GET /api/v1/admin/products (cả inactive)
func (h *ProductHandler) AdminList(c *gin.Context) {
	var q model.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "INVALID_QUERY", "Invalid query parameters")
		return
	}
	q.IncludeInactive = true

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

// GetDetail - GET /api/v1/products/:id
func (h *ProductHandler) GetDetail(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetDetail(c.Request.Context(), id, false)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Create - POST /api/v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// Update - PUT /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// AddVariant - POST /api/v1/admin/products/:id/variants
func (h *ProductHandler) AddVariant(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req model.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	v, err := h.service.AddVariant(c.Request.Context(), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, v)
}

// SetStock - PUT /api/v1/admin/products/:id/variants/:variantId/stock
func (h *ProductHandler) SetStock(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}
	variantID, ok := h.paramID(c, "variantId")
	if !ok {
		return
	}

	var req model.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.service.SetStock(c.Request.Context(), id, variantID, req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "stock updated"})
}

func (h *ProductHandler) paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "INVALID_ID", "Invalid id parameter")
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		response.NotFound(c, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, product.ErrVariantNotFound):
		response.NotFound(c, "VARIANT_NOT_FOUND", "Variant not found")
	case errors.Is(err, product.ErrDuplicateColor):
		response.Conflict(c, "DUPLICATE_COLOR", "Variant with this color already exists")
	case errors.Is(err, product.ErrInvalidRef):
		response.BadRequest(c, "INVALID_REFERENCE", "Referenced brand, category, color or size does not exist")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VALIDATION_ERROR", err.Error())
			return
		}
		response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
	}
}
