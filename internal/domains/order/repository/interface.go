package repository

import (
	"context"
	"time"

	"hoodlab-backend/internal/domains/order/model"
)

// PaymentTransition - một bước chuyển trạng thái thanh toán.
// OrderStatus nil nghĩa là giữ nguyên order_status hiện tại.
type PaymentTransition struct {
	PaymentStatus model.PaymentStatus
	OrderStatus   *model.OrderStatus
}

// OrderRepository - data access cho orders + order_items.
//
// ApplyPaymentTransition là điểm serialize duy nhất cho race giữa
// return callback và IPN: UPDATE có guard payment_status='Pending',
// ai thắng thì rows affected = 1, ai thua nhận false và phải đọc lại
// trạng thái hiện tại để quyết định bước tiếp theo.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, q model.ListOrdersQuery) (*model.OrderList, error)
	ListAll(ctx context.Context, q model.ListOrdersQuery) (*model.OrderList, error)

	ApplyPaymentTransition(ctx context.Context, orderNumber string, t PaymentTransition) (bool, error)
	SetPaymentMethod(ctx context.Context, id int64, method string) error
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error

	CancelAndRestock(ctx context.Context, o *model.Order) error
	ListExpiredPending(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error)
	GetSalesStats(ctx context.Context, from, to time.Time) (*model.SalesStats, error)
}
