package model

// PaymentStatus - trạng thái thanh toán của order.
// Pending chỉ tồn tại lúc tạo order; các callback không bao giờ đưa về lại Pending.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusPaid      PaymentStatus = "Paid"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// CanTransitionTo - luật chuyển trạng thái duy nhất, mọi nơi đều gọi qua đây.
// Paid là absorbing: đã Paid thì không callback nào đổi được nữa.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false
	}
	switch next {
	case PaymentStatusPaid, PaymentStatusCancelled, PaymentStatusFailed:
		return true
	}
	return false
}

func (s PaymentStatus) IsFinal() bool {
	return s != PaymentStatusPending
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled, PaymentStatusFailed:
		return true
	}
	return false
}

// OrderStatus - trạng thái fulfillment, độc lập với PaymentStatus
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipping   OrderStatus = "Shipping"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// CanTransitionTo cho fulfillment pipeline: tiến một bước hoặc hủy.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	allowed, ok := orderTransitions[s]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == next {
			return true
		}
	}
	return false
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:   {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusCompleted},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipping,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod tags
const (
	PaymentMethodVNPay = "VNPAY"
	PaymentMethodMomo  = "MOMO"
	PaymentMethodShip  = "SHIP" // COD - thanh toán khi nhận hàng
)
