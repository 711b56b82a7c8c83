package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyPaid   = errors.New("order already paid")
	ErrInvalidSignature   = errors.New("invalid callback signature")
	ErrInvalidAmount      = errors.New("callback amount does not match order total")
	ErrInvalidGateway     = errors.New("invalid payment gateway")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrMalformedCallback  = errors.New("malformed callback payload")
)

// Error codes - machine-readable, trả trong response envelope
const (
	ErrCodeOrderNotFound      = "PAY001"
	ErrCodeOrderAlreadyPaid   = "PAY002"
	ErrCodeInvalidSignature   = "PAY003"
	ErrCodeInvalidAmount      = "PAY004"
	ErrCodeInvalidGateway     = "PAY005"
	ErrCodeGatewayUnavailable = "PAY006"
	ErrCodeMalformedCallback  = "PAY007"
)

// =====================================================
// CUSTOM PAYMENT ERROR
// =====================================================

type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{Code: code, Message: message, Err: err}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewOrderNotFoundError(orderNumber string) *PaymentError {
	return NewPaymentError(ErrCodeOrderNotFound,
		fmt.Sprintf("Order %s not found", orderNumber), ErrOrderNotFound)
}

func NewOrderAlreadyPaidError(orderNumber string) *PaymentError {
	return NewPaymentError(ErrCodeOrderAlreadyPaid,
		fmt.Sprintf("Order %s is already paid", orderNumber), ErrOrderAlreadyPaid)
}

func NewInvalidSignatureError() *PaymentError {
	return NewPaymentError(ErrCodeInvalidSignature,
		"Callback signature verification failed", ErrInvalidSignature)
}

func NewInvalidAmountError(orderNumber string) *PaymentError {
	return NewPaymentError(ErrCodeInvalidAmount,
		fmt.Sprintf("Callback amount does not match order %s total", orderNumber), ErrInvalidAmount)
}

func NewGatewayUnavailableError(err error) *PaymentError {
	return NewPaymentError(ErrCodeGatewayUnavailable,
		"Could not create payment with gateway", err)
}
