package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hoodlab-backend/internal/domains/order"
	ordermodel "hoodlab-backend/internal/domains/order/model"
	orderrepo "hoodlab-backend/internal/domains/order/repository"
	"hoodlab-backend/internal/domains/payment/gateway"
	"hoodlab-backend/internal/domains/payment/gateway/momo"
	"hoodlab-backend/internal/domains/payment/gateway/vnpay"
	"hoodlab-backend/internal/domains/payment/model"
	"hoodlab-backend/internal/shared"
	"hoodlab-backend/pkg/logger"
)

type paymentService struct {
	orders orderrepo.OrderRepository
	vnpay  gateway.VNPayGateway
	momo   gateway.MomoGateway
}

func NewPaymentService(orders orderrepo.OrderRepository, vnpayGW gateway.VNPayGateway, momoGW gateway.MomoGateway) PaymentService {
	return &paymentService{
		orders: orders,
		vnpay:  vnpayGW,
		momo:   momoGW,
	}
}

// =====================================================
// BUILD PAYMENT
// =====================================================

// CreateVNPayPayment build redirect URL cho đơn của user.
// Step 1: load + validate order (thuộc user, chưa Paid)
// Step 2: build URL đã ký - KHÔNG ghi gì xuống DB ở đây (payment
// method đã chốt lúc checkout), mọi state transition chờ callback.
// Gateway lỗi giữa chừng thì đơn còn nguyên, user retry vô tư.
func (s *paymentService) CreateVNPayPayment(ctx context.Context, userID int64, req model.CreatePaymentRequest) (*model.PaymentURLResponse, error) {
	o, err := s.loadPayableOrder(ctx, userID, req.OrderID)
	if err != nil {
		return nil, err
	}

	paymentURL, err := s.vnpay.BuildPaymentURL(ctx, gateway.VNPayPaymentRequest{
		OrderNumber: o.OrderNumber,
		Amount:      o.TotalAmount,
		OrderInfo:   fmt.Sprintf("Thanh toan don hang %s", o.OrderNumber),
		BankCode:    req.BankCode,
		ClientIP:    shared.ClientIPFromContext(ctx),
	})
	if err != nil {
		return nil, model.NewGatewayUnavailableError(err)
	}

	return &model.PaymentURLResponse{PaymentURL: paymentURL, OrderNumber: o.OrderNumber}, nil
}

func (s *paymentService) CreateMomoPayment(ctx context.Context, userID int64, req model.CreatePaymentRequest) (*model.PaymentURLResponse, error) {
	o, err := s.loadPayableOrder(ctx, userID, req.OrderID)
	if err != nil {
		return nil, err
	}

	resp, err := s.momo.CreatePayment(ctx, gateway.MomoPaymentRequest{
		OrderNumber: o.OrderNumber,
		Amount:      o.TotalAmount,
		OrderInfo:   fmt.Sprintf("Thanh toan don hang %s", o.OrderNumber),
	})
	if err != nil {
		return nil, model.NewGatewayUnavailableError(err)
	}

	return &model.PaymentURLResponse{PaymentURL: resp.PayURL, OrderNumber: o.OrderNumber}, nil
}

// ConfirmShipPayment chọn COD cho đơn: payment giữ Pending đến khi
// giao hàng, chỉ gắn method và đẩy fulfillment sang Processing.
func (s *paymentService) ConfirmShipPayment(ctx context.Context, userID, orderID int64) error {
	o, err := s.loadPayableOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if err := s.orders.SetPaymentMethod(ctx, o.ID, ordermodel.PaymentMethodShip); err != nil {
		return fmt.Errorf("set payment method: %w", err)
	}

	if o.OrderStatus.CanTransitionTo(ordermodel.OrderStatusProcessing) {
		if err := s.orders.UpdateOrderStatus(ctx, o.ID, ordermodel.OrderStatusProcessing); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
	}
	return nil
}

func (s *paymentService) loadPayableOrder(ctx context.Context, userID, orderID int64) (*ordermodel.Order, error) {
	o, err := s.orders.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return nil, model.NewOrderNotFoundError(fmt.Sprintf("#%d", orderID))
		}
		return nil, err
	}
	if o.PaymentStatus == ordermodel.PaymentStatusPaid {
		return nil, model.NewOrderAlreadyPaidError(o.OrderNumber)
	}
	return o, nil
}

// =====================================================
// VNPAY RETURN (browser, advisory)
// =====================================================

// HandleVNPayReturn xử lý browser quay về từ cổng. Kết quả chỉ để
// hiển thị cho user; IPN mới là authority. Handler này phải chấp nhận
// thua race với IPN mà không kêu ca.
func (s *paymentService) HandleVNPayReturn(ctx context.Context, params map[string]string) (*model.ReturnResult, error) {
	if !s.vnpay.VerifyCallback(params) {
		return nil, model.NewInvalidSignatureError()
	}

	orderNumber := params["vnp_TxnRef"]
	o, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return nil, model.NewOrderNotFoundError(orderNumber)
		}
		return nil, err
	}

	// Đã Paid rồi - stale return không được phép ghi đè
	if o.PaymentStatus == ordermodel.PaymentStatusPaid {
		return &model.ReturnResult{
			OrderNumber: orderNumber,
			Success:     true,
			Message:     "Đơn hàng đã được thanh toán",
		}, nil
	}

	t, result := decideVNPayTransition(params, orderNumber)

	applied, err := s.orders.ApplyPaymentTransition(ctx, orderNumber, t)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Thua race với IPN - đọc lại trạng thái thật để báo user
		current, err := s.orders.GetByOrderNumber(ctx, orderNumber)
		if err != nil {
			return nil, err
		}
		result.Success = current.PaymentStatus == ordermodel.PaymentStatusPaid
		result.Cancelled = current.PaymentStatus == ordermodel.PaymentStatusCancelled
	}

	logger.Info("vnpay return processed", map[string]interface{}{
		"order_number": orderNumber,
		"success":      result.Success,
		"applied":      applied,
	})
	return result, nil
}

// decideVNPayTransition - luật chung cho cả return và IPN:
// success codes -> Paid + orderStatus Pending (chờ fulfillment)
// code 24       -> cả hai Cancelled
// còn lại       -> Failed, orderStatus giữ nguyên
func decideVNPayTransition(params map[string]string, orderNumber string) (orderrepo.PaymentTransition, *model.ReturnResult) {
	switch {
	case vnpay.IsSuccess(params):
		os := ordermodel.OrderStatusPending
		return orderrepo.PaymentTransition{
				PaymentStatus: ordermodel.PaymentStatusPaid,
				OrderStatus:   &os,
			}, &model.ReturnResult{
				OrderNumber: orderNumber,
				Success:     true,
				Message:     vnpay.GetResponseMessage(params["vnp_ResponseCode"]),
			}
	case vnpay.IsUserCancelled(params):
		os := ordermodel.OrderStatusCancelled
		return orderrepo.PaymentTransition{
				PaymentStatus: ordermodel.PaymentStatusCancelled,
				OrderStatus:   &os,
			}, &model.ReturnResult{
				OrderNumber: orderNumber,
				Cancelled:   true,
				Message:     vnpay.GetResponseMessage(params["vnp_ResponseCode"]),
			}
	default:
		return orderrepo.PaymentTransition{
				PaymentStatus: ordermodel.PaymentStatusFailed,
			}, &model.ReturnResult{
				OrderNumber: orderNumber,
				Message:     vnpay.GetResponseMessage(params["vnp_ResponseCode"]),
			}
	}
}

// =====================================================
// VNPAY IPN (server-to-server, authoritative, idempotent)
// =====================================================

// HandleVNPayIPN - không bao giờ trả error: mọi outcome là một
// acknowledgement code để cổng quyết định retry hay dừng.
//
// Lưu ý RspCode 00 cũng được trả cho outcome fail/cancel đã xử lý
// xong: 00 nghĩa là "notification đã tiếp nhận", không phải "thanh
// toán thành công". Trả khác đi là cổng retry vô hạn.
func (s *paymentService) HandleVNPayIPN(ctx context.Context, params map[string]string) model.IPNResponse {
	if !s.vnpay.VerifyCallback(params) {
		return model.NewIPNResponse(model.IPNCodeInvalidSignature, "Invalid signature")
	}

	orderNumber := params["vnp_TxnRef"]
	o, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return model.NewIPNResponse(model.IPNCodeOrderNotFound, "Order not found")
		}
		logger.Error("vnpay ipn: load order failed", err)
		return model.NewIPNResponse(model.IPNCodeMalformed, "Internal error")
	}

	// Đối soát số tiền trước mọi mutation - chặn notification replay
	// với amount khác
	callbackAmount, err := vnpay.ParseAmount(params)
	if err != nil {
		return model.NewIPNResponse(model.IPNCodeMalformed, "Invalid amount format")
	}
	if !callbackAmount.Equal(o.TotalAmount) {
		return model.NewIPNResponse(model.IPNCodeInvalidAmount, "Invalid amount")
	}

	// Idempotency: gateway retry cùng notification phải nhận "02",
	// tuyệt đối không apply transition lần hai
	if o.PaymentStatus == ordermodel.PaymentStatusPaid {
		return model.NewIPNResponse(model.IPNCodeAlreadyConfirmed, "Order already confirmed")
	}

	t, _ := decideVNPayTransition(params, orderNumber)

	applied, err := s.orders.ApplyPaymentTransition(ctx, orderNumber, t)
	if err != nil {
		logger.Error("vnpay ipn: apply transition failed", err)
		return model.NewIPNResponse(model.IPNCodeMalformed, "Internal error")
	}
	if !applied {
		// Thua race: ai đó vừa chốt trạng thái. Re-read để phân biệt
		// "đã Paid" với transition khác.
		current, err := s.orders.GetByOrderNumber(ctx, orderNumber)
		if err != nil {
			logger.Error("vnpay ipn: reload order failed", err)
			return model.NewIPNResponse(model.IPNCodeMalformed, "Internal error")
		}
		if current.PaymentStatus == ordermodel.PaymentStatusPaid {
			return model.NewIPNResponse(model.IPNCodeAlreadyConfirmed, "Order already confirmed")
		}
		return model.NewIPNResponse(model.IPNCodeSuccess, "Confirm success")
	}

	logger.Info("vnpay ipn processed", map[string]interface{}{
		"order_number":   orderNumber,
		"payment_status": string(t.PaymentStatus),
	})
	return model.NewIPNResponse(model.IPNCodeSuccess, "Confirm success")
}

// =====================================================
// MOMO IPN
// =====================================================

// HandleMomoIPN - MoMo dừng retry khi nhận HTTP 204, nên hàm này trả
// error cho handler quyết định status code. Idempotent như VNPay IPN.
func (s *paymentService) HandleMomoIPN(ctx context.Context, cb gateway.MomoCallback) error {
	if !s.momo.VerifyCallback(cb) {
		return model.NewInvalidSignatureError()
	}

	o, err := s.orders.GetByOrderNumber(ctx, cb.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return model.NewOrderNotFoundError(cb.OrderID)
		}
		return err
	}

	if !decimal.NewFromInt(cb.Amount).Equal(o.TotalAmount) {
		return model.NewInvalidAmountError(cb.OrderID)
	}

	if o.PaymentStatus == ordermodel.PaymentStatusPaid {
		// Retry của notification đã xử lý - ack im lặng
		return nil
	}

	var t orderrepo.PaymentTransition
	switch cb.ResultCode {
	case momo.ResultCodeSuccess:
		os := ordermodel.OrderStatusPending
		t = orderrepo.PaymentTransition{PaymentStatus: ordermodel.PaymentStatusPaid, OrderStatus: &os}
	case momo.ResultCodeUserCancelled:
		os := ordermodel.OrderStatusCancelled
		t = orderrepo.PaymentTransition{PaymentStatus: ordermodel.PaymentStatusCancelled, OrderStatus: &os}
	default:
		t = orderrepo.PaymentTransition{PaymentStatus: ordermodel.PaymentStatusFailed}
	}

	applied, err := s.orders.ApplyPaymentTransition(ctx, cb.OrderID, t)
	if err != nil {
		return err
	}

	logger.Info("momo ipn processed", map[string]interface{}{
		"order_number": cb.OrderID,
		"result_code":  cb.ResultCode,
		"result":       momo.GetResultMessage(cb.ResultCode),
		"applied":      applied,
	})
	return nil
}

// =====================================================
// EXPIRE PENDING PAYMENTS (worker)
// =====================================================

// ExpirePendingPayments hủy các đơn online còn Pending quá hạn và trả
// lại tồn kho. Guard CAS trong CancelAndRestock đảm bảo đơn vừa được
// IPN confirm trong lúc quét sẽ không bị hủy nhầm.
func (s *paymentService) ExpirePendingPayments(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	expired, err := s.orders.ListExpiredPending(ctx, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("list expired pending: %w", err)
	}

	cancelled := 0
	for i := range expired {
		o, err := s.orders.GetByID(ctx, expired[i].ID)
		if err != nil {
			logger.Error("expire payments: load order failed", err)
			continue
		}

		if err := s.orders.CancelAndRestock(ctx, o); err != nil {
			if errors.Is(err, order.ErrNotCancellable) {
				// Đơn vừa được thanh toán giữa lúc list và lúc cancel
				continue
			}
			logger.Error("expire payments: cancel failed", err)
			continue
		}

		cancelled++
		logger.Info("pending payment expired", map[string]interface{}{
			"order_number": o.OrderNumber,
		})
	}
	return cancelled, nil
}
