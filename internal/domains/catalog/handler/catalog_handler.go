package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hoodlab-backend/internal/domains/catalog"
	"hoodlab-backend/internal/domains/catalog/model"
	"hoodlab-backend/internal/domains/catalog/service"
	"hoodlab-backend/internal/shared/response"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// ListBrands - GET /api/v1/brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.service.ListBrands(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, brands)
}

// ListCategories - GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// ListColors - GET /api/v1/colors
func (h *CatalogHandler) ListColors(c *gin.Context) {
	colors, err := h.service.ListColors(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, colors)
}

// ListSizes - GET /api/v1/sizes
func (h *CatalogHandler) ListSizes(c *gin.Context) {
	sizes, err := h.service.ListSizes(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sizes)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// CreateBrand - POST /api/v1/admin/brands
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req model.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}
	brand, err := h.service.CreateBrand(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, brand)
}

// DeleteBrand - DELETE /api/v1/admin/brands/:id
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "INVALID_ID", "Invalid brand id")
		return
	}
	if err := h.service.DeleteBrand(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "brand deleted"})
}

// CreateCategory - POST /api/v1/admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

// DeleteCategory - DELETE /api/v1/admin/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "INVALID_ID", "Invalid category id")
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "category deleted"})
}

// CreateColor - POST /api/v1/admin/colors
func (h *CatalogHandler) CreateColor(c *gin.Context) {
	var req model.CreateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}
	color, err := h.service.CreateColor(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, color)
}

// DeleteColor - DELETE /api/v1/admin/colors/:id
func (h *CatalogHandler) DeleteColor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "INVALID_ID", "Invalid color id")
		return
	}
	if err := h.service.DeleteColor(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "color deleted"})
}

// CreateSize - POST /api/v1/admin/sizes
func (h *CatalogHandler) CreateSize(c *gin.Context) {
	var req model.CreateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}
	size, err := h.service.CreateSize(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, size)
}

// DeleteSize - DELETE /api/v1/admin/sizes/:id
func (h *CatalogHandler) DeleteSize(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "INVALID_ID", "Invalid size id")
		return
	}
	if err := h.service.DeleteSize(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "size deleted"})
}

func (h *CatalogHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		response.NotFound(c, "NOT_FOUND", "Catalog item not found")
	case errors.Is(err, catalog.ErrNameTaken):
		response.Conflict(c, "NAME_TAKEN", "Name already exists")
	case errors.Is(err, catalog.ErrInUse):
		response.Conflict(c, "IN_USE", "Item is referenced by existing products")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VALIDATION_ERROR", err.Error())
			return
		}
		response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
	}
}
