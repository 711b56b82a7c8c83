package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"hoodlab-backend/internal/domains/payment/service"
	"hoodlab-backend/pkg/logger"
)

const (
	// Đơn online Pending quá 30 phút coi như bỏ - khớp vnp_ExpireDate
	pendingPaymentTTL = 30 * time.Minute
	expireBatchSize   = 200
)

// ExpirePaymentsHandler - asynq task hủy đơn treo và trả tồn kho
type ExpirePaymentsHandler struct {
	service service.PaymentService
}

func NewExpirePaymentsHandler(service service.PaymentService) *ExpirePaymentsHandler {
	return &ExpirePaymentsHandler{service: service}
}

func (h *ExpirePaymentsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	cancelled, err := h.service.ExpirePendingPayments(ctx, pendingPaymentTTL, expireBatchSize)
	if err != nil {
		logger.Error("expire pending payments failed", err)
		return err
	}

	if cancelled > 0 {
		logger.Info("expired pending payments", map[string]interface{}{"cancelled": cancelled})
	}
	return nil
}
