package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CartItem - một dòng giỏ hàng, key nghiệp vụ là (user_id, variant_id, size_id)
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	VariantID int64     `json:"variant_id" db:"variant_id"`
	SizeID    int64     `json:"size_id" db:"size_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Denormalized cho response, load qua JOIN
	ProductID   int64           `json:"product_id" db:"-"`
	ProductName string          `json:"product_name" db:"-"`
	ColorName   string          `json:"color_name" db:"-"`
	SizeName    string          `json:"size_name" db:"-"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"-"`
	Stock       int             `json:"stock" db:"-"`
}

func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ========================================
// REQUEST DTOs
// ========================================

type AddItemRequest struct {
	VariantID int64 `json:"variant_id"`
	SizeID    int64 `json:"size_id"`
	Quantity  int   `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VariantID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.SizeID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type CartSummary struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
