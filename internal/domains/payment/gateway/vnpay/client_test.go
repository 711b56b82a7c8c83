package vnpay

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoodlab-backend/internal/domains/payment/gateway"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	cfg := NewConfig("DEMO01", testSecret,
		"https://sandbox.vnpayment.vn/paymentv2",
		"https://shop.example.com/payment/vnpay/return",
		"https://shop.example.com/payment/vnpay/ipn")

	gw, err := NewClient(cfg)
	require.NoError(t, err)

	c := gw.(*Client)
	// Freeze time: 2024-01-01 12:00:00 ICT
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, c.loc)
	c.nowFn = func() time.Time { return fixed }
	return c
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(NewConfig("", "secret", "url", "ret", "ipn"))
	assert.Error(t, err)

	_, err = NewClient(NewConfig("tmn", "", "url", "ret", "ipn"))
	assert.Error(t, err)
}

func TestBuildPaymentURL(t *testing.T) {
	c := testClient(t)

	redirect, err := c.BuildPaymentURL(context.Background(), gateway.VNPayPaymentRequest{
		OrderNumber: "ORD20240101120000001",
		Amount:      decimal.NewFromInt(180600),
		OrderInfo:   "Thanh toán đơn hàng",
		ClientIP:    "203.0.113.7",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(parsed.Path, "/vpcpay.html"))

	q := parsed.Query()
	assert.Equal(t, "2.1.0", q.Get("vnp_Version"))
	assert.Equal(t, "pay", q.Get("vnp_Command"))
	assert.Equal(t, "DEMO01", q.Get("vnp_TmnCode"))
	// 180600 x 100
	assert.Equal(t, "18060000", q.Get("vnp_Amount"))
	assert.Equal(t, "VND", q.Get("vnp_CurrCode"))
	assert.Equal(t, "ORD20240101120000001", q.Get("vnp_TxnRef"))
	// Diacritics đã bị strip
	assert.Equal(t, "Thanh toan don hang", q.Get("vnp_OrderInfo"))
	assert.Equal(t, "203.0.113.7", q.Get("vnp_IpAddr"))
	assert.Equal(t, "20240101120000", q.Get("vnp_CreateDate"))
	assert.Equal(t, "20240101123000", q.Get("vnp_ExpireDate"))
	assert.Empty(t, q.Get("vnp_BankCode"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))

	// Chữ ký trên URL phải verify được bằng chính callback path
	params := map[string]string{}
	for k, vals := range q {
		params[k] = vals[0]
	}
	assert.True(t, VerifySignature(params, testSecret))
}

func TestBuildPaymentURLWithBankCode(t *testing.T) {
	c := testClient(t)

	redirect, err := c.BuildPaymentURL(context.Background(), gateway.VNPayPaymentRequest{
		OrderNumber: "ORD1",
		Amount:      decimal.NewFromInt(50000),
		OrderInfo:   "test",
		ClientIP:    "1.2.3.4",
		BankCode:    "NCB",
	})
	require.NoError(t, err)

	parsed, _ := url.Parse(redirect)
	assert.Equal(t, "NCB", parsed.Query().Get("vnp_BankCode"))
}

func TestBuildPaymentURLIPv6FallsBackToLoopback(t *testing.T) {
	c := testClient(t)

	for _, ip := range []string{"::1", "2001:db8::1", "not-an-ip", ""} {
		redirect, err := c.BuildPaymentURL(context.Background(), gateway.VNPayPaymentRequest{
			OrderNumber: "ORD1",
			Amount:      decimal.NewFromInt(1000),
			OrderInfo:   "test",
			ClientIP:    ip,
		})
		require.NoError(t, err)

		parsed, _ := url.Parse(redirect)
		assert.Equal(t, "127.0.0.1", parsed.Query().Get("vnp_IpAddr"), "input ip %q", ip)
	}
}

func TestBuildPaymentURLValidation(t *testing.T) {
	c := testClient(t)

	_, err := c.BuildPaymentURL(context.Background(), gateway.VNPayPaymentRequest{
		Amount: decimal.NewFromInt(1000), OrderInfo: "x", ClientIP: "1.2.3.4",
	})
	assert.Error(t, err, "missing order number")

	_, err = c.BuildPaymentURL(context.Background(), gateway.VNPayPaymentRequest{
		OrderNumber: "ORD1", Amount: decimal.Zero, OrderInfo: "x", ClientIP: "1.2.3.4",
	})
	assert.Error(t, err, "non-positive amount")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"180600", "18060000"},
		{"100000", "10000000"},
		{"99.99", "9999"},
		// Truncate, không round
		{"10.009", "1000"},
		{"1", "100"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, formatAmount(d), "amount %s", tt.in)
	}
}

func TestSanitizeOrderInfo(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"vietnamese diacritics", "Thanh toán đơn hàng", "Thanh toan don hang"},
		{"capital dj", "Đặt hàng", "Dat hang"},
		{"keeps allowed punctuation", "Order ORD1, item A-2.5", "Order ORD1, item A-2.5"},
		{"replaces forbidden chars", "a#b$c%d", "a b c d"},
		{"trims edges", "  hello  ", "hello"},
		{"plain ascii untouched", "Payment for ORD123", "Payment for ORD123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeOrderInfo(tt.in))
		})
	}
}

func TestParseAmountRoundTrip(t *testing.T) {
	params := map[string]string{"vnp_Amount": "18060000"}
	got, err := ParseAmount(params)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(180600)))

	_, err = ParseAmount(map[string]string{})
	assert.Error(t, err)

	_, err = ParseAmount(map[string]string{"vnp_Amount": "abc"})
	assert.Error(t, err)
}

func TestIsSuccessRequiresBothCodes(t *testing.T) {
	assert.True(t, IsSuccess(map[string]string{
		"vnp_ResponseCode": "00", "vnp_TransactionStatus": "00",
	}))
	assert.False(t, IsSuccess(map[string]string{
		"vnp_ResponseCode": "00", "vnp_TransactionStatus": "02",
	}))
	assert.False(t, IsSuccess(map[string]string{
		"vnp_ResponseCode": "24", "vnp_TransactionStatus": "00",
	}))
	assert.False(t, IsSuccess(map[string]string{"vnp_ResponseCode": "00"}))
}

func TestParseCallbackParams(t *testing.T) {
	values := url.Values{}
	values.Set("vnp_TxnRef", "ORD1")
	values.Set("vnp_ResponseCode", "00")
	values.Set("vnp_SecureHash", "abc")
	values.Set("unrelated", "x")

	params, err := ParseCallbackParams(values)
	require.NoError(t, err)
	assert.Equal(t, "ORD1", params["vnp_TxnRef"])
	assert.NotContains(t, params, "unrelated")

	values.Del("vnp_TxnRef")
	_, err = ParseCallbackParams(values)
	assert.Error(t, err)
}
