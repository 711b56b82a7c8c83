package shared

// Asynq task types and queue names shared between the API and the worker
const (
	TypeExpirePendingPayments = "payment:expire_pending"

	QueuePayment = "payment"
	QueueDefault = "default"
)
