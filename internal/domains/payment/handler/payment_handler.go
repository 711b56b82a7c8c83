package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hoodlab-backend/internal/domains/payment/gateway"
	"hoodlab-backend/internal/domains/payment/gateway/vnpay"
	"hoodlab-backend/internal/domains/payment/model"
	"hoodlab-backend/internal/domains/payment/service"
	"hoodlab-backend/internal/shared/response"
	"hoodlab-backend/pkg/logger"
)

type PaymentHandler struct {
	service     service.PaymentService
	frontendURL string
}

func NewPaymentHandler(service service.PaymentService, frontendURL string) *PaymentHandler {
	return &PaymentHandler{service: service, frontendURL: frontendURL}
}

// =====================================================
// CREATE PAYMENT (authenticated)
// =====================================================

// CreateVNPayPayment - POST /api/v1/payment/vnpay
func (h *PaymentHandler) CreateVNPayPayment(c *gin.Context) {
	h.createPayment(c, h.service.CreateVNPayPayment)
}

// CreateMomoPayment - POST /api/v1/payment/momo
func (h *PaymentHandler) CreateMomoPayment(c *gin.Context) {
	h.createPayment(c, h.service.CreateMomoPayment)
}

func (h *PaymentHandler) createPayment(
	c *gin.Context,
	create func(ctx context.Context, userID int64, req model.CreatePaymentRequest) (*model.PaymentURLResponse, error),
) {
	userID := c.GetInt64("user_id")

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := create(c.Request.Context(), userID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ConfirmShipPayment - POST /api/v1/payment/ship
func (h *PaymentHandler) ConfirmShipPayment(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.ConfirmShipPayment(c.Request.Context(), userID, req.OrderID); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "ship payment confirmed"})
}

// =====================================================
// VNPAY CALLBACKS (unauthenticated - bảo vệ bằng chữ ký)
// =====================================================

// HandleVNPayReturn - GET /api/v1/payment/vnpay/return
// Browser quay về từ cổng; xử lý xong redirect sang frontend kèm kết quả.
func (h *PaymentHandler) HandleVNPayReturn(c *gin.Context) {
	params, err := vnpay.ParseCallbackParams(c.Request.URL.Query())
	if err != nil {
		c.Redirect(http.StatusFound, h.resultRedirect("", false, "invalid_callback"))
		return
	}

	result, err := h.service.HandleVNPayReturn(c.Request.Context(), params)
	if err != nil {
		var pErr *model.PaymentError
		reason := "error"
		if errors.As(err, &pErr) {
			switch pErr.Code {
			case model.ErrCodeInvalidSignature:
				reason = "invalid_signature"
			case model.ErrCodeOrderNotFound:
				reason = "order_not_found"
			}
		}
		c.Redirect(http.StatusFound, h.resultRedirect(params["vnp_TxnRef"], false, reason))
		return
	}

	status := "failed"
	switch {
	case result.Success:
		status = "success"
	case result.Cancelled:
		status = "cancelled"
	}
	c.Redirect(http.StatusFound, h.resultRedirect(result.OrderNumber, result.Success, status))
}

// HandleVNPayIPN - GET|POST /api/v1/payment/vnpay/ipn
// Cổng gửi params trên query string (GET) hoặc form body (POST).
// Luôn HTTP 200; cổng đọc RspCode trong body để quyết định retry.
func (h *PaymentHandler) HandleVNPayIPN(c *gin.Context) {
	values := c.Request.URL.Query()
	if len(values) == 0 && c.Request.Method == http.MethodPost {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusOK, model.NewIPNResponse(model.IPNCodeMalformed, "Invalid input data"))
			return
		}
		values = c.Request.PostForm
	}

	params, err := vnpay.ParseCallbackParams(values)
	if err != nil {
		c.JSON(http.StatusOK, model.NewIPNResponse(model.IPNCodeMalformed, "Invalid input data"))
		return
	}

	ack := h.service.HandleVNPayIPN(c.Request.Context(), params)
	c.JSON(http.StatusOK, ack)
}

// =====================================================
// MOMO CALLBACK
// =====================================================

// HandleMomoCallback - POST /api/v1/payment/momo/callback
// MoMo dừng retry khi nhận 204 No Content.
func (h *PaymentHandler) HandleMomoCallback(c *gin.Context) {
	var cb gateway.MomoCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.service.HandleMomoIPN(c.Request.Context(), cb); err != nil {
		logger.Error("momo callback failed", err)

		var pErr *model.PaymentError
		if errors.As(err, &pErr) {
			// Lỗi business (chữ ký, amount, order) - trả 204 để MoMo
			// không retry một notification không bao giờ hợp lệ được
			c.Status(http.StatusNoContent)
			return
		}
		// Lỗi hạ tầng - để MoMo retry
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PaymentHandler) resultRedirect(orderNumber string, success bool, status string) string {
	q := url.Values{}
	q.Set("status", status)
	if orderNumber != "" {
		q.Set("order", orderNumber)
	}
	if success {
		q.Set("paid", "1")
	}
	return fmt.Sprintf("%s/payment/result?%s", h.frontendURL, q.Encode())
}

func (h *PaymentHandler) mapError(c *gin.Context, err error) {
	var pErr *model.PaymentError
	if errors.As(err, &pErr) {
		switch pErr.Code {
		case model.ErrCodeOrderNotFound:
			response.NotFound(c, pErr.Code, pErr.Message)
		case model.ErrCodeOrderAlreadyPaid:
			response.Conflict(c, pErr.Code, pErr.Message)
		case model.ErrCodeInvalidSignature, model.ErrCodeInvalidAmount, model.ErrCodeMalformedCallback:
			response.BadRequest(c, pErr.Code, pErr.Message)
		case model.ErrCodeGatewayUnavailable:
			response.ErrorResponse(c, http.StatusBadGateway, pErr.Code, pErr.Message)
		default:
			response.InternalServerError(c, pErr.Code, pErr.Message)
		}
		return
	}

	var ve validation.Errors
	if errors.As(err, &ve) {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}
	response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
}
