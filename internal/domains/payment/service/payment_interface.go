package service

import (
	"context"
	"time"

	"hoodlab-backend/internal/domains/payment/gateway"
	"hoodlab-backend/internal/domains/payment/model"
)

// PaymentService - điều phối flow thanh toán giữa order và gateway.
//
// Hai đường callback (return từ browser, IPN server-to-server) chạy
// song song không có thứ tự; IPN là nguồn sự thật, return chỉ advisory.
type PaymentService interface {
	// Build payment - không mutation nào lên trạng thái thanh toán
	CreateVNPayPayment(ctx context.Context, userID int64, req model.CreatePaymentRequest) (*model.PaymentURLResponse, error)
	CreateMomoPayment(ctx context.Context, userID int64, req model.CreatePaymentRequest) (*model.PaymentURLResponse, error)
	ConfirmShipPayment(ctx context.Context, userID, orderID int64) error

	// Callbacks
	HandleVNPayReturn(ctx context.Context, params map[string]string) (*model.ReturnResult, error)
	HandleVNPayIPN(ctx context.Context, params map[string]string) model.IPNResponse
	HandleMomoIPN(ctx context.Context, cb gateway.MomoCallback) error

	// Worker: hủy đơn online treo Pending quá hạn, trả lại tồn kho
	ExpirePendingPayments(ctx context.Context, olderThan time.Duration, limit int) (int, error)
}
