package main

import (
	"github.com/hibiken/asynq"

	paymentJob "hoodlab-backend/internal/domains/payment/job"
	"hoodlab-backend/internal/shared"
	"hoodlab-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	expirePayments *paymentJob.ExpirePaymentsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		expirePayments: paymentJob.NewExpirePaymentsHandler(c.PaymentService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeExpirePendingPayments, h.expirePayments.ProcessTask)
}
