package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoodlab-backend/internal/domains/order"
	ordermodel "hoodlab-backend/internal/domains/order/model"
	orderrepo "hoodlab-backend/internal/domains/order/repository"
	"hoodlab-backend/internal/domains/payment/gateway"
	"hoodlab-backend/internal/domains/payment/gateway/momo"
	"hoodlab-backend/internal/domains/payment/gateway/vnpay"
	"hoodlab-backend/internal/domains/payment/model"
)

const (
	testVNPaySecret = "VNPAYSECRET"
	testMomoSecret  = "MOMOSECRET"
)

// =====================================================
// IN-MEMORY ORDER REPO
// =====================================================

type fakeOrderRepo struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]*ordermodel.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*ordermodel.Order{}}
}

func (r *fakeOrderRepo) add(o *ordermodel.Order) *ordermodel.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	o.ID = r.seq
	r.orders[o.OrderNumber] = o
	return o
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *ordermodel.Order) error {
	r.add(o)
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*ordermodel.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrNotFound
}

func (r *fakeOrderRepo) GetByIDAndUser(ctx context.Context, id, userID int64) (*ordermodel.Order, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*ordermodel.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderNumber]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID int64, q ordermodel.ListOrdersQuery) (*ordermodel.OrderList, error) {
	return &ordermodel.OrderList{}, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context, q ordermodel.ListOrdersQuery) (*ordermodel.OrderList, error) {
	return &ordermodel.OrderList{}, nil
}

// ApplyPaymentTransition - CAS giống hệt bản SQL: chỉ đi qua khi đang Pending
func (r *fakeOrderRepo) ApplyPaymentTransition(ctx context.Context, orderNumber string, t orderrepo.PaymentTransition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderNumber]
	if !ok || o.PaymentStatus != ordermodel.PaymentStatusPending {
		return false, nil
	}
	o.PaymentStatus = t.PaymentStatus
	if t.OrderStatus != nil {
		o.OrderStatus = *t.OrderStatus
	}
	o.Version++
	return true, nil
}

func (r *fakeOrderRepo) SetPaymentMethod(ctx context.Context, id int64, method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.PaymentMethod = method
			return nil
		}
	}
	return order.ErrNotFound
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id int64, status ordermodel.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.OrderStatus = status
			return nil
		}
	}
	return order.ErrNotFound
}

func (r *fakeOrderRepo) CancelAndRestock(ctx context.Context, o *ordermodel.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.OrderNumber]
	if !ok || stored.PaymentStatus != ordermodel.PaymentStatusPending {
		return order.ErrNotCancellable
	}
	stored.PaymentStatus = ordermodel.PaymentStatusCancelled
	stored.OrderStatus = ordermodel.OrderStatusCancelled
	stored.Version++
	return nil
}

func (r *fakeOrderRepo) ListExpiredPending(ctx context.Context, olderThan time.Time, limit int) ([]ordermodel.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ordermodel.Order
	for _, o := range r.orders {
		if o.PaymentStatus == ordermodel.PaymentStatusPending && o.CreatedAt.Before(olderThan) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetSalesStats(ctx context.Context, from, to time.Time) (*ordermodel.SalesStats, error) {
	return &ordermodel.SalesStats{}, nil
}

// =====================================================
// FIXTURES
// =====================================================

func newTestService(t *testing.T) (*paymentService, *fakeOrderRepo) {
	t.Helper()

	vnpayGW, err := vnpay.NewClient(vnpay.NewConfig("DEMO01", testVNPaySecret,
		"https://sandbox.vnpayment.vn/paymentv2",
		"https://shop.example.com/payment/vnpay/return",
		"https://shop.example.com/payment/vnpay/ipn"))
	require.NoError(t, err)

	momoGW, err := momo.NewClient(momo.NewConfig("MOMOPARTNER", "ACCESSKEY", testMomoSecret,
		"https://test-payment.momo.vn",
		"https://shop.example.com/payment/momo/return",
		"https://shop.example.com/payment/momo/callback"))
	require.NoError(t, err)

	repo := newFakeOrderRepo()
	svc := NewPaymentService(repo, vnpayGW, momoGW).(*paymentService)
	return svc, repo
}

func pendingOrder(repo *fakeOrderRepo, orderNumber string, amount int64) *ordermodel.Order {
	return repo.add(&ordermodel.Order{
		OrderNumber:   orderNumber,
		UserID:        1,
		TotalAmount:   decimal.NewFromInt(amount),
		PaymentMethod: ordermodel.PaymentMethodVNPay,
		PaymentStatus: ordermodel.PaymentStatusPending,
		OrderStatus:   ordermodel.OrderStatusPending,
		CreatedAt:     time.Now().Add(-time.Hour),
	})
}

// signedVNPayCallback dựng callback params đã ký đúng secret
func signedVNPayCallback(orderNumber string, amount int64, responseCode, txnStatus string) map[string]string {
	params := map[string]string{
		"vnp_TmnCode":           "DEMO01",
		"vnp_Amount":            strconv.FormatInt(amount*100, 10),
		"vnp_TxnRef":            orderNumber,
		"vnp_OrderInfo":         "Thanh toan don hang " + orderNumber,
		"vnp_ResponseCode":      responseCode,
		"vnp_TransactionStatus": txnStatus,
		"vnp_TransactionNo":     "14226112",
	}
	_, hash := vnpay.Sign(params, testVNPaySecret)
	params["vnp_SecureHash"] = hash
	return params
}

func signedMomoCallback(orderNumber string, amount int64, resultCode int) gateway.MomoCallback {
	cb := gateway.MomoCallback{
		PartnerCode:  "MOMOPARTNER",
		OrderID:      orderNumber,
		RequestID:    "req-1",
		Amount:       amount,
		OrderInfo:    "Thanh toan " + orderNumber,
		OrderType:    "momo_wallet",
		TransID:      4088878653,
		ResultCode:   resultCode,
		Message:      "ok",
		PayType:      "qr",
		ResponseTime: 1704110400000,
	}
	raw := momo.BuildCallbackRawSignature(
		"ACCESSKEY", strconv.FormatInt(cb.Amount, 10), cb.ExtraData, cb.Message,
		cb.OrderID, cb.OrderInfo, cb.OrderType, cb.PartnerCode, cb.PayType,
		cb.RequestID, strconv.FormatInt(cb.ResponseTime, 10), cb.ResultCode,
		strconv.FormatInt(cb.TransID, 10),
	)
	cb.Signature = momo.GenerateSignature(raw, testMomoSecret)
	return cb
}

// =====================================================
// BUILD PAYMENT
// =====================================================

func TestCreateVNPayPayment(t *testing.T) {
	svc, repo := newTestService(t)
	o := pendingOrder(repo, "ORD20240101120000001", 180600)

	resp, err := svc.CreateVNPayPayment(context.Background(), 1, model.CreatePaymentRequest{OrderID: o.ID})
	require.NoError(t, err)
	assert.Contains(t, resp.PaymentURL, "vnp_SecureHash=")
	assert.Contains(t, resp.PaymentURL, "vnp_TxnRef=ORD20240101120000001")
	assert.Contains(t, resp.PaymentURL, "vnp_Amount=18060000")
	assert.Equal(t, o.OrderNumber, resp.OrderNumber)

	// Build URL là read-only: không mutation nào lên đơn
	stored, _ := repo.GetByOrderNumber(context.Background(), o.OrderNumber)
	assert.Equal(t, ordermodel.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, ordermodel.PaymentMethodVNPay, stored.PaymentMethod)
	assert.Equal(t, 0, stored.Version)
}

// failingMomoGateway giả lập cổng chết/timeout lúc create
type failingMomoGateway struct{}

func (failingMomoGateway) CreatePayment(ctx context.Context, req gateway.MomoPaymentRequest) (*gateway.MomoPaymentResponse, error) {
	return nil, fmt.Errorf("momo unreachable: timeout")
}

func (failingMomoGateway) VerifyCallback(cb gateway.MomoCallback) bool { return false }

func TestCreateMomoPaymentGatewayFailureLeavesOrderUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	svc.momo = failingMomoGateway{}
	o := pendingOrder(repo, "ORD1", 100000) // checkout đã chọn VNPAY

	_, err := svc.CreateMomoPayment(context.Background(), 1, model.CreatePaymentRequest{OrderID: o.ID})
	var pErr *model.PaymentError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ErrCodeGatewayUnavailable, pErr.Code)

	// Cổng fail giữa chừng không được để lại mutation dở dang nào
	stored, _ := repo.GetByOrderNumber(context.Background(), o.OrderNumber)
	assert.Equal(t, ordermodel.PaymentMethodVNPay, stored.PaymentMethod)
	assert.Equal(t, ordermodel.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, 0, stored.Version)
}

func TestCreateVNPayPaymentRejectsPaidOrder(t *testing.T) {
	svc, repo := newTestService(t)
	o := pendingOrder(repo, "ORD1", 100000)
	repo.orders[o.OrderNumber].PaymentStatus = ordermodel.PaymentStatusPaid

	_, err := svc.CreateVNPayPayment(context.Background(), 1, model.CreatePaymentRequest{OrderID: o.ID})
	var pErr *model.PaymentError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ErrCodeOrderAlreadyPaid, pErr.Code)
}

func TestCreateVNPayPaymentWrongUser(t *testing.T) {
	svc, repo := newTestService(t)
	o := pendingOrder(repo, "ORD1", 100000)

	_, err := svc.CreateVNPayPayment(context.Background(), 42, model.CreatePaymentRequest{OrderID: o.ID})
	var pErr *model.PaymentError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ErrCodeOrderNotFound, pErr.Code)
}

func TestConfirmShipPayment(t *testing.T) {
	svc, repo := newTestService(t)
	o := pendingOrder(repo, "ORD1", 100000)

	require.NoError(t, svc.ConfirmShipPayment(context.Background(), 1, o.ID))

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentMethodShip, stored.PaymentMethod)
	assert.Equal(t, ordermodel.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, ordermodel.OrderStatusProcessing, stored.OrderStatus)
}

// =====================================================
// VNPAY RETURN
// =====================================================

func TestHandleVNPayReturnSuccess(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	result, err := svc.HandleVNPayReturn(context.Background(),
		signedVNPayCallback("ORD1", 180600, "00", "00"))
	require.NoError(t, err)
	assert.True(t, result.Success)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, ordermodel.OrderStatusPending, stored.OrderStatus)
}

func TestHandleVNPayReturnUserCancelled(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	result, err := svc.HandleVNPayReturn(context.Background(),
		signedVNPayCallback("ORD1", 180600, "24", "02"))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.Cancelled)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusCancelled, stored.PaymentStatus)
	assert.Equal(t, ordermodel.OrderStatusCancelled, stored.OrderStatus)
}

func TestHandleVNPayReturnFailureKeepsOrderStatus(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	result, err := svc.HandleVNPayReturn(context.Background(),
		signedVNPayCallback("ORD1", 180600, "51", "02"))
	require.NoError(t, err)
	assert.False(t, result.Success)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusFailed, stored.PaymentStatus)
	// orderStatus giữ nguyên khi Failed
	assert.Equal(t, ordermodel.OrderStatusPending, stored.OrderStatus)
}

func TestHandleVNPayReturnInvalidSignature(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	params := signedVNPayCallback("ORD1", 180600, "00", "00")
	params["vnp_Amount"] = "1"

	_, err := svc.HandleVNPayReturn(context.Background(), params)
	var pErr *model.PaymentError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ErrCodeInvalidSignature, pErr.Code)

	// Không mutation khi chữ ký sai
	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusPending, stored.PaymentStatus)
}

func TestHandleVNPayReturnAfterIPNPaidIsNoOp(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	// IPN confirm trước
	ack := svc.HandleVNPayIPN(context.Background(), signedVNPayCallback("ORD1", 180600, "00", "00"))
	require.Equal(t, model.IPNCodeSuccess, ack.RspCode)

	before, _ := repo.GetByOrderNumber(context.Background(), "ORD1")

	// Return về sau, kể cả với code cancel - không được ghi đè Paid
	result, err := svc.HandleVNPayReturn(context.Background(),
		signedVNPayCallback("ORD1", 180600, "24", "02"))
	require.NoError(t, err)
	assert.True(t, result.Success)

	after, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusPaid, after.PaymentStatus)
	assert.Equal(t, before.Version, after.Version)
}

// =====================================================
// VNPAY IPN
// =====================================================

func TestHandleVNPayIPNSuccess(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	ack := svc.HandleVNPayIPN(context.Background(), signedVNPayCallback("ORD1", 180600, "00", "00"))
	assert.Equal(t, model.IPNCodeSuccess, ack.RspCode)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, ordermodel.OrderStatusPending, stored.OrderStatus)
}

func TestHandleVNPayIPNIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)
	params := signedVNPayCallback("ORD1", 180600, "00", "00")

	first := svc.HandleVNPayIPN(context.Background(), params)
	assert.Equal(t, model.IPNCodeSuccess, first.RspCode)
	afterFirst, _ := repo.GetByOrderNumber(context.Background(), "ORD1")

	// Gateway retry y hệt payload - phải nhận "02", không double-apply
	second := svc.HandleVNPayIPN(context.Background(), params)
	assert.Equal(t, model.IPNCodeAlreadyConfirmed, second.RspCode)

	afterSecond, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, afterFirst.Version, afterSecond.Version)
	assert.Equal(t, ordermodel.PaymentStatusPaid, afterSecond.PaymentStatus)
}

func TestHandleVNPayIPNInvalidSignature(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	params := signedVNPayCallback("ORD1", 180600, "00", "00")
	params["vnp_SecureHash"] = "0000"

	ack := svc.HandleVNPayIPN(context.Background(), params)
	assert.Equal(t, model.IPNCodeInvalidSignature, ack.RspCode)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusPending, stored.PaymentStatus)
}

func TestHandleVNPayIPNOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	ack := svc.HandleVNPayIPN(context.Background(), signedVNPayCallback("ORD-missing", 1000, "00", "00"))
	assert.Equal(t, model.IPNCodeOrderNotFound, ack.RspCode)
}

func TestHandleVNPayIPNAmountMismatch(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	// Callback ký hợp lệ nhưng số tiền khác order total
	ack := svc.HandleVNPayIPN(context.Background(), signedVNPayCallback("ORD1", 999999, "00", "00"))
	assert.Equal(t, model.IPNCodeInvalidAmount, ack.RspCode)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusPending, stored.PaymentStatus)
}

func TestHandleVNPayIPNBusinessFailureStillAcksSuccess(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	// Outcome fail vẫn phải ack 00 - cổng chỉ cần biết notification đã
	// được xử lý, trả khác là retry vô hạn
	ack := svc.HandleVNPayIPN(context.Background(), signedVNPayCallback("ORD1", 180600, "51", "02"))
	assert.Equal(t, model.IPNCodeSuccess, ack.RspCode)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusFailed, stored.PaymentStatus)
}

// =====================================================
// RACE: RETURN vs IPN
// =====================================================

func TestReturnAndIPNConcurrentFirstConfirmationWins(t *testing.T) {
	// Return (cancel) và IPN (success) bắn song song nhiều vòng -
	// CAS đảm bảo đúng một transition được apply mỗi order
	for round := 0; round < 20; round++ {
		svc, repo := newTestService(t)
		pendingOrder(repo, "ORD1", 180600)

		successParams := signedVNPayCallback("ORD1", 180600, "00", "00")
		cancelParams := signedVNPayCallback("ORD1", 180600, "24", "02")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.HandleVNPayIPN(context.Background(), successParams)
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.HandleVNPayReturn(context.Background(), cancelParams)
		}()
		wg.Wait()

		stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
		// Một trong hai thắng, không bao giờ lẫn lộn trạng thái
		assert.True(t,
			stored.PaymentStatus == ordermodel.PaymentStatusPaid ||
				stored.PaymentStatus == ordermodel.PaymentStatusCancelled)
		assert.Equal(t, 1, stored.Version, "exactly one transition applied")
	}
}

// =====================================================
// MOMO IPN
// =====================================================

func TestHandleMomoIPNSuccess(t *testing.T) {
	svc, repo := newTestService(t)
	o := pendingOrder(repo, "ORD1", 180600)
	o.PaymentMethod = ordermodel.PaymentMethodMomo

	cb := signedMomoCallback("ORD1", 180600, momo.ResultCodeSuccess)

	require.NoError(t, svc.HandleMomoIPN(context.Background(), cb))

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusPaid, stored.PaymentStatus)
}

func TestHandleMomoIPNIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	cb := signedMomoCallback("ORD1", 180600, momo.ResultCodeSuccess)

	require.NoError(t, svc.HandleMomoIPN(context.Background(), cb))
	afterFirst, _ := repo.GetByOrderNumber(context.Background(), "ORD1")

	require.NoError(t, svc.HandleMomoIPN(context.Background(), cb))
	afterSecond, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, afterFirst.Version, afterSecond.Version)
}

func TestHandleMomoIPNUserCancelled(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	cb := signedMomoCallback("ORD1", 180600, momo.ResultCodeUserCancelled)

	require.NoError(t, svc.HandleMomoIPN(context.Background(), cb))

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD1")
	assert.Equal(t, ordermodel.PaymentStatusCancelled, stored.PaymentStatus)
	assert.Equal(t, ordermodel.OrderStatusCancelled, stored.OrderStatus)
}

func TestHandleMomoIPNInvalidSignature(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	cb := signedMomoCallback("ORD1", 180600, momo.ResultCodeSuccess)
	cb.Signature = "bad"

	err := svc.HandleMomoIPN(context.Background(), cb)
	var pErr *model.PaymentError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ErrCodeInvalidSignature, pErr.Code)
}

func TestHandleMomoIPNAmountMismatch(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD1", 180600)

	cb := signedMomoCallback("ORD1", 1, momo.ResultCodeSuccess)

	err := svc.HandleMomoIPN(context.Background(), cb)
	var pErr *model.PaymentError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, model.ErrCodeInvalidAmount, pErr.Code)
}

// =====================================================
// EXPIRE PENDING
// =====================================================

func TestExpirePendingPayments(t *testing.T) {
	svc, repo := newTestService(t)
	pendingOrder(repo, "ORD-old", 100000) // created 1h ago

	fresh := repo.add(&ordermodel.Order{
		OrderNumber:   "ORD-fresh",
		UserID:        1,
		TotalAmount:   decimal.NewFromInt(50000),
		PaymentMethod: ordermodel.PaymentMethodVNPay,
		PaymentStatus: ordermodel.PaymentStatusPending,
		OrderStatus:   ordermodel.OrderStatusPending,
		CreatedAt:     time.Now(),
	})

	n, err := svc.ExpirePendingPayments(context.Background(), 30*time.Minute, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	old, _ := repo.GetByOrderNumber(context.Background(), "ORD-old")
	assert.Equal(t, ordermodel.PaymentStatusCancelled, old.PaymentStatus)

	stillFresh, _ := repo.GetByOrderNumber(context.Background(), fresh.OrderNumber)
	assert.Equal(t, ordermodel.PaymentStatusPending, stillFresh.PaymentStatus)
}

func TestExpirePendingPaymentsNeverTouchesPaidOrders(t *testing.T) {
	svc, repo := newTestService(t)
	repo.add(&ordermodel.Order{
		OrderNumber:   "ORD-paid",
		UserID:        1,
		TotalAmount:   decimal.NewFromInt(100000),
		PaymentMethod: ordermodel.PaymentMethodVNPay,
		PaymentStatus: ordermodel.PaymentStatusPaid,
		OrderStatus:   ordermodel.OrderStatusProcessing,
		CreatedAt:     time.Now().Add(-time.Hour),
	})

	n, err := svc.ExpirePendingPayments(context.Background(), 30*time.Minute, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	stored, _ := repo.GetByOrderNumber(context.Background(), "ORD-paid")
	assert.Equal(t, ordermodel.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, ordermodel.OrderStatusProcessing, stored.OrderStatus)
}
