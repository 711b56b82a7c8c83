package momo

import "fmt"

// =====================================================
// MOMO CONFIGURATION
// =====================================================

type Config struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string // Secret cho HMAC-SHA256
	APIURL      string
	ReturnURL   string
	IPNURL      string
}

func NewConfig(partnerCode, accessKey, secretKey, apiURL, returnURL, ipnURL string) *Config {
	return &Config{
		PartnerCode: partnerCode,
		AccessKey:   accessKey,
		SecretKey:   secretKey,
		APIURL:      apiURL,
		ReturnURL:   returnURL,
		IPNURL:      ipnURL,
	}
}

func (c *Config) Validate() error {
	if c.PartnerCode == "" {
		return fmt.Errorf("Momo PartnerCode is required")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("Momo AccessKey is required")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("Momo SecretKey is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("Momo APIURL is required")
	}
	return nil
}

// GetCreateURL - endpoint tạo giao dịch
func (c *Config) GetCreateURL() string {
	return c.APIURL + "/v2/gateway/api/create"
}

// =====================================================
// MOMO CONSTANTS
// =====================================================

const (
	RequestTypeCaptureWallet = "captureWallet"

	// Result codes
	ResultCodeSuccess           = 0
	ResultCodeUserCancelled     = 9000
	ResultCodeInsufficientFunds = 1001
	ResultCodeTimeout           = 1002
	ResultCodeUnavailable       = 1003
	ResultCodeInvalidRequest    = 1004
	ResultCodeTransactionFailed = 1005
	ResultCodeAccountLocked     = 1006
	ResultCodeInvalidSignature  = 4001
)

// GetResultMessage trả message tiếng Việt cho result code
func GetResultMessage(code int) string {
	messages := map[int]string{
		ResultCodeSuccess:           "Giao dịch thành công",
		ResultCodeUserCancelled:     "Người dùng hủy giao dịch",
		ResultCodeInsufficientFunds: "Số dư tài khoản không đủ",
		ResultCodeTimeout:           "Giao dịch hết hạn",
		ResultCodeUnavailable:       "Phương thức thanh toán không khả dụng",
		ResultCodeInvalidRequest:    "Yêu cầu không hợp lệ",
		ResultCodeTransactionFailed: "Giao dịch thất bại",
		ResultCodeAccountLocked:     "Tài khoản bị khóa",
		ResultCodeInvalidSignature:  "Chữ ký không hợp lệ",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Lỗi không xác định"
}
