package momo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// =====================================================
// MOMO SIGNATURE
// =====================================================
//
// Khác VNPay: MoMo ký HMAC-SHA256 trên raw string với THỨ TỰ FIELD
// CỐ ĐỊNH (không sort), không URL-encode.

func GenerateSignature(rawSignature, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(rawSignature))
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildCreateSignature - raw string cho request tạo giao dịch
func BuildCreateSignature(cfg *Config, requestID, orderID, amount, orderInfo, extraData string) string {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%s&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		cfg.AccessKey, amount, extraData, cfg.IPNURL, orderID, orderInfo,
		cfg.PartnerCode, cfg.ReturnURL, requestID, RequestTypeCaptureWallet,
	)
	return GenerateSignature(raw, cfg.SecretKey)
}

// BuildCallbackRawSignature - raw string cho IPN callback.
// accessKey của merchant nằm trong chuỗi ký dù không có trong payload.
func BuildCallbackRawSignature(accessKey, amount, extraData, message, orderID, orderInfo,
	orderType, partnerCode, payType, requestID, responseTime string, resultCode int, transID string) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%s&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%s&resultCode=%d&transId=%s",
		accessKey, amount, extraData, message, orderID, orderInfo,
		orderType, partnerCode, payType, requestID, responseTime, resultCode, transID,
	)
}

// VerifyCallbackSignature kiểm tra chữ ký IPN
func VerifyCallbackSignature(cfg *Config, raw, receivedSignature string) bool {
	if receivedSignature == "" {
		return false
	}
	expected := GenerateSignature(raw, cfg.SecretKey)
	return strings.EqualFold(receivedSignature, expected)
}
