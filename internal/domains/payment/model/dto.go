package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreatePaymentRequest - user yêu cầu thanh toán cho một order của mình
type CreatePaymentRequest struct {
	OrderID  int64  `json:"order_id"`
	BankCode string `json:"bank_code"` // chỉ VNPay dùng, optional
}

func (r CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.BankCode, validation.Length(0, 20)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// PaymentURLResponse - URL để frontend redirect user sang cổng
type PaymentURLResponse struct {
	PaymentURL  string `json:"payment_url"`
	OrderNumber string `json:"order_number"`
}

// ReturnResult - kết quả xử lý return callback, dùng để build
// redirect về frontend kèm query mô tả kết quả
type ReturnResult struct {
	OrderNumber string `json:"order_number"`
	Success     bool   `json:"success"`
	Cancelled   bool   `json:"cancelled"`
	Message     string `json:"message"`
}
