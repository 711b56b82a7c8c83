package vnpay

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// =====================================================
// CALLBACK PARAM HELPERS
// =====================================================

// ParseCallbackParams lấy toàn bộ param vnp_* từ query values.
// Giá trị đã được net/http decode sẵn - không decode lần hai.
func ParseCallbackParams(values url.Values) (map[string]string, error) {
	params := make(map[string]string)
	for key, vals := range values {
		if strings.HasPrefix(key, "vnp_") && len(vals) > 0 {
			params[key] = vals[0]
		}
	}

	for _, field := range []string{"vnp_TxnRef", "vnp_ResponseCode", "vnp_SecureHash"} {
		if params[field] == "" {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}
	return params, nil
}

// IsSuccess - thành công khi và chỉ khi cả hai code đều "00"
func IsSuccess(params map[string]string) bool {
	return params["vnp_ResponseCode"] == ResponseCodeSuccess &&
		params["vnp_TransactionStatus"] == TransactionStatusSuccess
}

// IsUserCancelled - user bấm hủy trên cổng
func IsUserCancelled(params map[string]string) bool {
	return params["vnp_ResponseCode"] == ResponseCodeUserCancelled
}

// ParseAmount đổi vnp_Amount (minor units, x100) về số tiền gốc
func ParseAmount(params map[string]string) (decimal.Decimal, error) {
	raw := params["vnp_Amount"]
	if raw == "" {
		return decimal.Zero, fmt.Errorf("missing vnp_Amount")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid vnp_Amount %q: %w", raw, err)
	}
	return amount.Div(decimal.NewFromInt(100)), nil
}
