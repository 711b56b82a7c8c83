package vnpay

import "fmt"

// =====================================================
// VNPAY CONFIGURATION
// =====================================================

type Config struct {
	TmnCode    string // Mã merchant VNPay cấp
	HashSecret string // Secret key cho HMAC-SHA512
	APIURL     string // Base URL cổng thanh toán
	ReturnURL  string // Browser quay về đây sau khi thanh toán
	IPNURL     string // Server-to-server notification URL
	Version    string
	Command    string
	CurrCode   string
	Locale     string
}

func NewConfig(tmnCode, hashSecret, apiURL, returnURL, ipnURL string) *Config {
	return &Config{
		TmnCode:    tmnCode,
		HashSecret: hashSecret,
		APIURL:     apiURL,
		ReturnURL:  returnURL,
		IPNURL:     ipnURL,
		Version:    "2.1.0",
		Command:    "pay",
		CurrCode:   "VND",
		Locale:     "vn",
	}
}

func (c *Config) Validate() error {
	if c.TmnCode == "" {
		return fmt.Errorf("VNPay TmnCode is required")
	}
	if c.HashSecret == "" {
		return fmt.Errorf("VNPay HashSecret is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("VNPay APIURL is required")
	}
	if c.ReturnURL == "" {
		return fmt.Errorf("VNPay ReturnURL is required")
	}
	return nil
}

// GetPaymentURL trả về endpoint redirect đầy đủ
func (c *Config) GetPaymentURL() string {
	return c.APIURL + "/vpcpay.html"
}

// =====================================================
// VNPAY CONSTANTS
// =====================================================

const (
	// Response codes
	ResponseCodeSuccess               = "00"
	ResponseCodeTransactionTimeout    = "07"
	ResponseCodeTransactionProcessing = "09"
	ResponseCodeCardLocked            = "10"
	ResponseCodeOTPExpired            = "11"
	ResponseCodeIncorrectOTP          = "13"
	ResponseCodeUserCancelled         = "24"
	ResponseCodeInsufficientBalance   = "51"
	ResponseCodeLimitExceeded         = "65"
	ResponseCodeBankMaintenance       = "75"
	ResponseCodeTimeout               = "79"

	// Transaction status
	TransactionStatusSuccess = "00"
)

// GetResponseMessage trả message tiếng Việt cho response code
func GetResponseMessage(code string) string {
	messages := map[string]string{
		ResponseCodeSuccess:               "Giao dịch thành công",
		ResponseCodeTransactionTimeout:    "Giao dịch hết hạn (timeout)",
		ResponseCodeTransactionProcessing: "Giao dịch đang xử lý",
		ResponseCodeCardLocked:            "Thẻ bị khóa",
		ResponseCodeOTPExpired:            "Mã OTP hết hạn",
		ResponseCodeIncorrectOTP:          "OTP không chính xác",
		ResponseCodeUserCancelled:         "Người dùng hủy giao dịch",
		ResponseCodeInsufficientBalance:   "Số dư tài khoản không đủ",
		ResponseCodeLimitExceeded:         "Vượt quá hạn mức thanh toán",
		ResponseCodeBankMaintenance:       "Ngân hàng đang bảo trì",
		ResponseCodeTimeout:               "Giao dịch hết hạn (timeout)",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Lỗi không xác định"
}
