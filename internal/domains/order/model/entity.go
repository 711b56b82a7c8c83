package model

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// Order - đơn hàng. OrderNumber là correlation key duy nhất lộ ra ngoài
// (gateway chỉ thấy OrderNumber, không bao giờ thấy id số).
type Order struct {
	ID              int64           `json:"id" db:"id"`
	OrderNumber     string          `json:"order_number" db:"order_number"`
	UserID          int64           `json:"user_id" db:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"payment_status" db:"payment_status"`
	OrderStatus     OrderStatus     `json:"order_status" db:"order_status"`
	ReceiverName    string          `json:"receiver_name" db:"receiver_name"`
	ReceiverPhone   string          `json:"receiver_phone" db:"receiver_phone"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	// Version tăng mỗi lần đổi payment status - phục vụ optimistic check
	Version   int       `json:"-" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Items []OrderItem `json:"items,omitempty" db:"-"`
}

type OrderItem struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"order_id" db:"order_id"`
	VariantID   int64           `json:"variant_id" db:"variant_id"`
	SizeID      int64           `json:"size_id" db:"size_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	ColorName   string          `json:"color_name" db:"color_name"`
	SizeName    string          `json:"size_name" db:"size_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity    int             `json:"quantity" db:"quantity"`
}

// NewOrderNumber sinh mã đơn: ORD + timestamp UTC + 4 số ngẫu nhiên.
// Unique constraint trên cột order_number chặn trường hợp trùng hiếm gặp.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD%s%04d", time.Now().UTC().Format("20060102150405"), rand.IntN(9000)+1000)
}
