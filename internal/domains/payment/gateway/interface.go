package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// =====================================================
// GATEWAY INTERFACES
// =====================================================

// VNPayPaymentRequest - input để build redirect URL
type VNPayPaymentRequest struct {
	OrderNumber string
	Amount      decimal.Decimal
	OrderInfo   string
	BankCode    string // optional, rỗng = để user chọn trên cổng
	ClientIP    string
}

// VNPayGateway - build URL và verify chữ ký callback.
// Build không đụng vào DB; mọi mutation xảy ra ở tầng service khi callback về.
type VNPayGateway interface {
	BuildPaymentURL(ctx context.Context, req VNPayPaymentRequest) (string, error)
	VerifyCallback(params map[string]string) bool
	ReturnURL() string
}

// MomoPaymentRequest - input tạo giao dịch MoMo
type MomoPaymentRequest struct {
	OrderNumber string
	Amount      decimal.Decimal
	OrderInfo   string
}

// MomoPaymentResponse - response từ MoMo create API
type MomoPaymentResponse struct {
	PayURL     string
	ResultCode int
	Message    string
}

// MomoCallback - payload IPN MoMo gửi về
type MomoCallback struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

type MomoGateway interface {
	CreatePayment(ctx context.Context, req MomoPaymentRequest) (*MomoPaymentResponse, error)
	VerifyCallback(cb MomoCallback) bool
}
