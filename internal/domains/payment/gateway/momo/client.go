package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hoodlab-backend/internal/domains/payment/gateway"
)

// =====================================================
// MOMO CLIENT
// =====================================================

type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) (gateway.MomoGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Momo config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type createRequest struct {
	PartnerCode string `json:"partnerCode"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IpnURL      string `json:"ipnUrl"`
	RequestType string `json:"requestType"`
	ExtraData   string `json:"extraData"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

type createResponse struct {
	PartnerCode string `json:"partnerCode"`
	OrderID     string `json:"orderId"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	PayURL      string `json:"payUrl"`
	ResultCode  int    `json:"resultCode"`
	Message     string `json:"message"`
}

// CreatePayment gọi MoMo create API, trả về payUrl để redirect user.
// Fail ở đây an toàn retry - chưa có mutation nào lên order.
func (c *Client) CreatePayment(ctx context.Context, req gateway.MomoPaymentRequest) (*gateway.MomoPaymentResponse, error) {
	if req.OrderNumber == "" {
		return nil, fmt.Errorf("order number is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive")
	}

	// MoMo nhận amount VND nguyên, không nhân 100 như VNPay
	amount := req.Amount.Truncate(0)
	requestID := uuid.New().String()

	body := createRequest{
		PartnerCode: c.config.PartnerCode,
		RequestID:   requestID,
		Amount:      amount.IntPart(),
		OrderID:     req.OrderNumber,
		OrderInfo:   req.OrderInfo,
		RedirectURL: c.config.ReturnURL,
		IpnURL:      c.config.IPNURL,
		RequestType: RequestTypeCaptureWallet,
		ExtraData:   "",
		Lang:        "vi",
	}
	body.Signature = BuildCreateSignature(c.config, requestID, req.OrderNumber, amount.String(), req.OrderInfo, "")

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal momo request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetCreateURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build momo request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call momo create: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read momo response: %w", err)
	}

	var result createResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode momo response: %w", err)
	}

	if result.ResultCode != ResultCodeSuccess {
		return nil, fmt.Errorf("momo create failed: code=%d message=%s", result.ResultCode, result.Message)
	}
	if result.PayURL == "" {
		return nil, fmt.Errorf("momo create returned empty payUrl")
	}

	return &gateway.MomoPaymentResponse{
		PayURL:     result.PayURL,
		ResultCode: result.ResultCode,
		Message:    result.Message,
	}, nil
}

// VerifyCallback dựng lại raw signature từ payload IPN và so với chữ ký nhận được
func (c *Client) VerifyCallback(cb gateway.MomoCallback) bool {
	raw := BuildCallbackRawSignature(
		c.config.AccessKey,
		strconv.FormatInt(cb.Amount, 10),
		cb.ExtraData,
		cb.Message,
		cb.OrderID,
		cb.OrderInfo,
		cb.OrderType,
		cb.PartnerCode,
		cb.PayType,
		cb.RequestID,
		strconv.FormatInt(cb.ResponseTime, 10),
		cb.ResultCode,
		strconv.FormatInt(cb.TransID, 10),
	)
	return VerifyCallbackSignature(c.config, raw, cb.Signature)
}
