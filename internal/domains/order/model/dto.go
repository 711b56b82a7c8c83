package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUEST DTOs
// ========================================

// CheckoutRequest - tạo order từ giỏ hàng hiện tại
type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method"`
	ReceiverName    string `json:"receiver_name"`
	ReceiverPhone   string `json:"receiver_phone"`
	ShippingAddress string `json:"shipping_address"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PaymentMethod, validation.Required,
			validation.In(PaymentMethodVNPay, PaymentMethodMomo, PaymentMethodShip)),
		validation.Field(&r.ReceiverName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.ReceiverPhone, validation.Required, validation.Length(8, 20)),
		validation.Field(&r.ShippingAddress, validation.Required, validation.Length(5, 500)),
	)
}

type ListOrdersQuery struct {
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
	PaymentStatus string `form:"payment_status"`
	OrderStatus   string `form:"order_status"`
}

func (q *ListOrdersQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status"`
}

func (r UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderStatus, validation.Required, validation.By(func(v interface{}) error {
			if !OrderStatus(v.(string)).Valid() {
				return validation.NewError("validation_order_status", "invalid order status")
			}
			return nil
		})),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type OrderList struct {
	Items []Order `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

// SalesStats - thống kê doanh thu cho admin dashboard, chỉ tính đơn đã Paid
type SalesStats struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	OrderCount   int64           `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
