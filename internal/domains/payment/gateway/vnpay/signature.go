package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// =====================================================
// VNPAY SIGNATURE
// =====================================================
//
// Thuật toán ký (bắt buộc đúng từng bước, lệch một bước là cổng reject):
// 1. Bỏ vnp_SecureHash, vnp_SecureHashType và mọi param rỗng
// 2. Sort key tăng dần (byte-wise)
// 3. Build chuỗi key=value&... với key/value đã URL-encode kiểu
//    application/x-www-form-urlencoded (space thành '+')
// 4. HMAC-SHA512(chuỗi đó, secret), hex encode
//
// Build và Verify dùng chung một encoder - hash luôn tính trên
// chuỗi ĐÃ encode, cả chiều đi lẫn chiều callback về.

// encodeParam encode theo đúng kiểu form-urlencoded mà VNPay dùng
func encodeParam(s string) string {
	return url.QueryEscape(s)
}

// BuildSignData dựng chuỗi canonical để ký từ param map.
// Kết quả không phụ thuộc thứ tự insert vào map.
func BuildSignData(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(encodeParam(k))
		b.WriteByte('=')
		b.WriteString(encodeParam(params[k]))
	}
	return b.String()
}

// Sign trả về (signData, secureHash) cho param map
func Sign(params map[string]string, secret string) (string, string) {
	signData := BuildSignData(params)
	return signData, hmacSHA512(signData, secret)
}

// VerifySignature kiểm tra vnp_SecureHash trong callback params.
// So sánh case-insensitive - VNPay lúc trả hoa lúc trả thường.
func VerifySignature(params map[string]string, secret string) bool {
	received := params["vnp_SecureHash"]
	if received == "" {
		return false
	}

	_, expected := Sign(params, secret)
	return strings.EqualFold(received, expected)
}

func hmacSHA512(data, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
