package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hoodlab-backend/internal/domains/order"
	"hoodlab-backend/internal/domains/order/model"
	"hoodlab-backend/internal/domains/order/service"
	"hoodlab-backend/internal/shared/response"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Checkout - POST /api/v1/orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	o, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, o)
}

// GetOrder - GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := c.GetInt64("user_id")
	orderID, ok := h.paramID(c)
	if !ok {
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

// ListOrders - GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var q model.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "INVALID_QUERY", "Invalid query parameters")
		return
	}

	result, err := h.service.ListOrders(c.Request.Context(), userID, q)
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

// CancelOrder - POST /api/v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID := c.GetInt64("user_id")
	orderID, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.service.CancelOrder(c.Request.Context(), userID, orderID); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "order cancelled"})
}

// ========================================
// ADMIN
// ========================================

// AdminListOrders - GET /api/v1/admin/orders
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	var q model.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "INVALID_QUERY", "Invalid query parameters")
		return
	}

	result, err := h.service.AdminListOrders(c.Request.Context(), q)
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

// AdminUpdateStatus - PUT /api/v1/admin/orders/:id/status
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	orderID, ok := h.paramID(c)
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.service.AdminUpdateStatus(c.Request.Context(), orderID, req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "order status updated"})
}

// SalesStats - GET /api/v1/admin/stats/sales?from=2026-01-01&to=2026-02-01
func (h *OrderHandler) SalesStats(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", time.Now().AddDate(0, -1, 0).Format("2006-01-02")))
	if err != nil {
		response.BadRequest(c, "INVALID_QUERY", "Invalid from date")
		return
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", time.Now().AddDate(0, 0, 1).Format("2006-01-02")))
	if err != nil {
		response.BadRequest(c, "INVALID_QUERY", "Invalid to date")
		return
	}

	stats, err := h.service.GetSalesStats(c.Request.Context(), from, to)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *OrderHandler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "INVALID_ID", "Invalid order id")
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		response.NotFound(c, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, order.ErrEmptyCart):
		response.BadRequest(c, "EMPTY_CART", "Cart is empty")
	case errors.Is(err, order.ErrInsufficientStock):
		response.Conflict(c, "INSUFFICIENT_STOCK", "Not enough stock for one or more items")
	case errors.Is(err, order.ErrAlreadyPaid):
		response.Conflict(c, "ALREADY_PAID", "Order is already paid")
	case errors.Is(err, order.ErrNotCancellable):
		response.Conflict(c, "NOT_CANCELLABLE", "Order cannot be cancelled in its current state")
	case errors.Is(err, order.ErrInvalidTransition):
		response.Conflict(c, "INVALID_TRANSITION", "Invalid order status transition")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VALIDATION_ERROR", err.Error())
			return
		}
		response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
	}
}
