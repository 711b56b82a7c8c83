package vnpay

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"hoodlab-backend/internal/domains/payment/gateway"
	"hoodlab-backend/internal/shared/utils"
)

// =====================================================
// VNPAY CLIENT
// =====================================================

type Client struct {
	config *Config
	loc    *time.Location
	nowFn  func() time.Time
}

func NewClient(config *Config) (gateway.VNPayGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid VNPay config: %w", err)
	}

	// vnp_CreateDate phải theo giờ Việt Nam, không phải UTC
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		loc = time.FixedZone("ICT", 7*3600)
	}

	return &Client{
		config: config,
		loc:    loc,
		nowFn:  time.Now,
	}, nil
}

// BuildPaymentURL dựng redirect URL đã ký. Không có side effect nào
// lên order - mọi mutation chờ callback.
func (c *Client) BuildPaymentURL(ctx context.Context, req gateway.VNPayPaymentRequest) (string, error) {
	if req.OrderNumber == "" {
		return "", fmt.Errorf("order number is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("amount must be positive")
	}

	now := c.nowFn().In(c.loc)

	params := map[string]string{
		"vnp_Version":    c.config.Version,
		"vnp_Command":    c.config.Command,
		"vnp_TmnCode":    c.config.TmnCode,
		"vnp_Amount":     formatAmount(req.Amount),
		"vnp_CurrCode":   c.config.CurrCode,
		"vnp_TxnRef":     req.OrderNumber,
		"vnp_OrderInfo":  sanitizeOrderInfo(req.OrderInfo),
		"vnp_OrderType":  "other",
		"vnp_Locale":     c.config.Locale,
		"vnp_ReturnUrl":  c.config.ReturnURL,
		"vnp_IpAddr":     utils.NormalizeIPv4(req.ClientIP),
		"vnp_CreateDate": now.Format("20060102150405"),
		"vnp_ExpireDate": now.Add(30 * time.Minute).Format("20060102150405"),
	}
	if req.BankCode != "" {
		params["vnp_BankCode"] = req.BankCode
	}

	signData, secureHash := Sign(params, c.config.HashSecret)
	return fmt.Sprintf("%s?%s&vnp_SecureHash=%s", c.config.GetPaymentURL(), signData, secureHash), nil
}

func (c *Client) VerifyCallback(params map[string]string) bool {
	return VerifySignature(params, c.config.HashSecret)
}

func (c *Client) ReturnURL() string {
	return c.config.ReturnURL
}

// formatAmount - VNPay nhận VND x100, truncate phần lẻ
// Ví dụ: 180600 VND -> "18060000"
func formatAmount(amount decimal.Decimal) string {
	return amount.Mul(decimal.NewFromInt(100)).Truncate(0).String()
}

// sanitizeOrderInfo đưa mô tả đơn về ASCII an toàn:
// bỏ dấu tiếng Việt (NFD + strip combining marks, Đ -> D),
// ký tự ngoài [a-zA-Z0-9 .,-] thay bằng space.
func sanitizeOrderInfo(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	out := make([]rune, 0, len(stripped))
	for _, r := range stripped {
		switch {
		case r == 'Đ':
			out = append(out, 'D')
		case r == 'đ':
			out = append(out, 'd')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '.', r == ',', r == '-':
			out = append(out, r)
		default:
			out = append(out, ' ')
		}
	}
	return strings.TrimSpace(string(out))
}
