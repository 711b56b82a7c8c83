package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hoodlab-backend/internal/domains/cart"
	"hoodlab-backend/internal/domains/cart/model"
	"hoodlab-backend/internal/domains/cart/service"
	"hoodlab-backend/internal/shared/response"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(service service.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// GetCart - GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetInt64("user_id")

	summary, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// AddItem - POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// UpdateItem - PUT /api/v1/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := c.GetInt64("user_id")
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "INVALID_ID", "Invalid item id")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "cart item updated"})
}

// RemoveItem - DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetInt64("user_id")
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "INVALID_ID", "Invalid item id")
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "cart item removed"})
}

// Clear - DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "cart cleared"})
}

func (h *CartHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		response.NotFound(c, "ITEM_NOT_FOUND", "Cart item not found")
	case errors.Is(err, cart.ErrVariantNotFound):
		response.NotFound(c, "VARIANT_NOT_FOUND", "Variant size not found")
	case errors.Is(err, cart.ErrInsufficientStock):
		response.Conflict(c, "INSUFFICIENT_STOCK", "Not enough stock for requested quantity")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VALIDATION_ERROR", err.Error())
			return
		}
		response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
	}
}
