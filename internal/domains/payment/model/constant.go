package model

// =====================================================
// IPN ACKNOWLEDGEMENT
// =====================================================
//
// Cổng retry IPN cho đến khi nhận RspCode chấp nhận được - retry
// quyết định theo RspCode trong body, KHÔNG theo HTTP status.
// HTTP luôn trả 200.

const (
	IPNCodeSuccess          = "00" // confirm thành công (kể cả outcome fail/cancel - xem ghi chú service)
	IPNCodeOrderNotFound    = "01"
	IPNCodeAlreadyConfirmed = "02"
	IPNCodeInvalidAmount    = "04"
	IPNCodeInvalidSignature = "97"
	IPNCodeMalformed        = "99"
)

// IPNResponse - body trả cho VNPay IPN
type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

func NewIPNResponse(code, message string) IPNResponse {
	return IPNResponse{RspCode: code, Message: message}
}
