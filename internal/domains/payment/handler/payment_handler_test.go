package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoodlab-backend/internal/domains/payment/gateway"
	"hoodlab-backend/internal/domains/payment/model"
)

// stubPaymentService ghi lại params IPN nhận được để assert handler
// đã parse đúng từ cả query string lẫn form body
type stubPaymentService struct {
	ipnParams map[string]string
	ipnCalls  int
}

func (s *stubPaymentService) CreateVNPayPayment(ctx context.Context, userID int64, req model.CreatePaymentRequest) (*model.PaymentURLResponse, error) {
	return &model.PaymentURLResponse{}, nil
}

func (s *stubPaymentService) CreateMomoPayment(ctx context.Context, userID int64, req model.CreatePaymentRequest) (*model.PaymentURLResponse, error) {
	return &model.PaymentURLResponse{}, nil
}

func (s *stubPaymentService) ConfirmShipPayment(ctx context.Context, userID, orderID int64) error {
	return nil
}

func (s *stubPaymentService) HandleVNPayReturn(ctx context.Context, params map[string]string) (*model.ReturnResult, error) {
	return &model.ReturnResult{}, nil
}

func (s *stubPaymentService) HandleVNPayIPN(ctx context.Context, params map[string]string) model.IPNResponse {
	s.ipnCalls++
	s.ipnParams = params
	return model.NewIPNResponse(model.IPNCodeSuccess, "Confirm success")
}

func (s *stubPaymentService) HandleMomoIPN(ctx context.Context, cb gateway.MomoCallback) error {
	return nil
}

func (s *stubPaymentService) ExpirePendingPayments(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	return 0, nil
}

func newIPNRouter(t *testing.T) (*gin.Engine, *stubPaymentService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &stubPaymentService{}
	h := NewPaymentHandler(svc, "https://shop.example.com")

	r := gin.New()
	r.GET("/payment/vnpay/ipn", h.HandleVNPayIPN)
	r.POST("/payment/vnpay/ipn", h.HandleVNPayIPN)
	return r, svc
}

func ipnForm() url.Values {
	form := url.Values{}
	form.Set("vnp_TxnRef", "ORD1")
	form.Set("vnp_ResponseCode", "00")
	form.Set("vnp_TransactionStatus", "00")
	form.Set("vnp_Amount", "18060000")
	form.Set("vnp_SecureHash", "abc")
	return form
}

func decodeIPN(t *testing.T, w *httptest.ResponseRecorder) model.IPNResponse {
	t.Helper()
	var ack model.IPNResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	return ack
}

func TestHandleVNPayIPNQueryString(t *testing.T) {
	r, svc := newIPNRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/payment/vnpay/ipn?"+ipnForm().Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.ipnCalls)
	assert.Equal(t, "ORD1", svc.ipnParams["vnp_TxnRef"])
	assert.Equal(t, model.IPNCodeSuccess, decodeIPN(t, w).RspCode)
}

func TestHandleVNPayIPNPostFormBody(t *testing.T) {
	// Cổng có thể giao IPN bằng POST form-encoded không kèm query -
	// notification phải tới được service y như bản GET
	r, svc := newIPNRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/payment/vnpay/ipn",
		strings.NewReader(ipnForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, svc.ipnCalls)
	assert.Equal(t, "ORD1", svc.ipnParams["vnp_TxnRef"])
	assert.Equal(t, "00", svc.ipnParams["vnp_ResponseCode"])
	assert.Equal(t, model.IPNCodeSuccess, decodeIPN(t, w).RspCode)
}

func TestHandleVNPayIPNPostQueryStringWins(t *testing.T) {
	// POST kèm query params (kiểu giao hàng phổ biến của VNPay) vẫn
	// đọc từ query như trước
	r, svc := newIPNRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/payment/vnpay/ipn?"+ipnForm().Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.ipnCalls)
	assert.Equal(t, "ORD1", svc.ipnParams["vnp_TxnRef"])
}

func TestHandleVNPayIPNMalformedAcks99(t *testing.T) {
	r, svc := newIPNRouter(t)

	form := ipnForm()
	form.Del("vnp_TxnRef")
	req := httptest.NewRequest(http.MethodPost, "/payment/vnpay/ipn",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.ipnCalls)
	assert.Equal(t, model.IPNCodeMalformed, decodeIPN(t, w).RspCode)
}
