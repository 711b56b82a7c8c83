package momo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoodlab-backend/internal/domains/payment/gateway"
)

func testConfig() *Config {
	return NewConfig("MOMOPARTNER", "ACCESSKEY", "MOMOSECRET",
		"https://test-payment.momo.vn",
		"https://shop.example.com/payment/momo/return",
		"https://shop.example.com/payment/momo/callback")
}

func TestGenerateSignature(t *testing.T) {
	raw := "accessKey=ACCESSKEY&amount=50000"
	got := GenerateSignature(raw, "MOMOSECRET")

	mac := hmac.New(sha256.New, []byte("MOMOSECRET"))
	mac.Write([]byte(raw))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), got)
	// Lowercase hex
	assert.Equal(t, strings.ToLower(got), got)
}

func TestBuildCreateSignatureFieldOrder(t *testing.T) {
	cfg := testConfig()

	sig := BuildCreateSignature(cfg, "req-1", "ORD1", "50000", "Thanh toan ORD1", "")

	wantRaw := "accessKey=ACCESSKEY&amount=50000&extraData=&ipnUrl=" + cfg.IPNURL +
		"&orderId=ORD1&orderInfo=Thanh toan ORD1&partnerCode=MOMOPARTNER" +
		"&redirectUrl=" + cfg.ReturnURL + "&requestId=req-1&requestType=captureWallet"
	assert.Equal(t, GenerateSignature(wantRaw, cfg.SecretKey), sig)
}

func signedCallback(cfg *Config, resultCode int) gateway.MomoCallback {
	cb := gateway.MomoCallback{
		PartnerCode:  cfg.PartnerCode,
		OrderID:      "ORD20240101120000001",
		RequestID:    "req-1",
		Amount:       180600,
		OrderInfo:    "Thanh toan ORD20240101120000001",
		OrderType:    "momo_wallet",
		TransID:      4088878653,
		ResultCode:   resultCode,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1704110400000,
		ExtraData:    "",
	}

	raw := BuildCallbackRawSignature(
		cfg.AccessKey, "180600", cb.ExtraData, cb.Message, cb.OrderID, cb.OrderInfo,
		cb.OrderType, cb.PartnerCode, cb.PayType, cb.RequestID, "1704110400000",
		cb.ResultCode, "4088878653",
	)
	cb.Signature = GenerateSignature(raw, cfg.SecretKey)
	return cb
}

func TestVerifyCallbackRoundTrip(t *testing.T) {
	cfg := testConfig()
	gw, err := NewClient(cfg)
	require.NoError(t, err)

	cb := signedCallback(cfg, ResultCodeSuccess)
	assert.True(t, gw.VerifyCallback(cb))
}

func TestVerifyCallbackTamper(t *testing.T) {
	cfg := testConfig()
	gw, err := NewClient(cfg)
	require.NoError(t, err)

	cb := signedCallback(cfg, ResultCodeSuccess)
	cb.Amount = 1
	assert.False(t, gw.VerifyCallback(cb))

	cb = signedCallback(cfg, ResultCodeSuccess)
	cb.OrderID = "ORD-other"
	assert.False(t, gw.VerifyCallback(cb))

	cb = signedCallback(cfg, ResultCodeSuccess)
	cb.Signature = ""
	assert.False(t, gw.VerifyCallback(cb))
}

func TestVerifyCallbackCaseInsensitiveHex(t *testing.T) {
	cfg := testConfig()
	gw, err := NewClient(cfg)
	require.NoError(t, err)

	cb := signedCallback(cfg, ResultCodeSuccess)
	cb.Signature = strings.ToUpper(cb.Signature)
	assert.True(t, gw.VerifyCallback(cb))
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(NewConfig("", "a", "s", "u", "r", "i"))
	assert.Error(t, err)

	_, err = NewClient(NewConfig("p", "a", "", "u", "r", "i"))
	assert.Error(t, err)
}

func TestGetResultMessage(t *testing.T) {
	assert.Equal(t, "Giao dịch thành công", GetResultMessage(ResultCodeSuccess))
	assert.Equal(t, "Người dùng hủy giao dịch", GetResultMessage(ResultCodeUserCancelled))
	assert.Equal(t, "Lỗi không xác định", GetResultMessage(123456))
}
