package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ========================================
// ENTITIES
// ========================================

// Product - sản phẩm, giá lưu bằng decimal để không lệch khi tính tiền
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	BrandID     int64           `json:"brand_id" db:"brand_id"`
	CategoryID  int64           `json:"category_id" db:"category_id"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	BrandName    string `json:"brand_name,omitempty" db:"-"`
	CategoryName string `json:"category_name,omitempty" db:"-"`

	Variants []Variant `json:"variants,omitempty" db:"-"`
}

// Variant - một màu của sản phẩm
type Variant struct {
	ID        int64  `json:"id" db:"id"`
	ProductID int64  `json:"product_id" db:"product_id"`
	ColorID   int64  `json:"color_id" db:"color_id"`
	ColorName string `json:"color_name,omitempty" db:"-"`
	ImageURL  string `json:"image_url" db:"image_url"`

	Sizes []VariantSize `json:"sizes,omitempty" db:"-"`
}

// VariantSize - tồn kho theo (variant, size)
type VariantSize struct {
	ID        int64  `json:"id" db:"id"`
	VariantID int64  `json:"variant_id" db:"variant_id"`
	SizeID    int64  `json:"size_id" db:"size_id"`
	SizeName  string `json:"size_name,omitempty" db:"-"`
	Stock     int    `json:"stock" db:"stock"`
}

// ========================================
// REQUEST DTOs
// ========================================

type ListProductsQuery struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	Search     string `form:"search"`
	BrandID    int64  `form:"brand_id"`
	CategoryID int64  `form:"category_id"`
	// Admin thấy cả sản phẩm inactive
	IncludeInactive bool `form:"-"`
}

// Normalize đưa page/limit về khoảng hợp lệ
func (q *ListProductsQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	BrandID     int64           `json:"brand_id"`
	CategoryID  int64           `json:"category_id"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Price, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&r.BrandID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(int64(1))),
	)
}

type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	BrandID     int64           `json:"brand_id"`
	CategoryID  int64           `json:"category_id"`
	IsActive    *bool           `json:"is_active"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&r.BrandID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(int64(1))),
	)
}

type CreateVariantRequest struct {
	ColorID  int64  `json:"color_id"`
	ImageURL string `json:"image_url"`
}

func (r CreateVariantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ColorID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.ImageURL, validation.Length(0, 500)),
	)
}

type SetStockRequest struct {
	SizeID int64 `json:"size_id"`
	Stock  int   `json:"stock"`
}

func (r SetStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SizeID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

func positiveDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.Cmp(decimal.Zero) <= 0 {
		return validation.NewError("validation_positive", "must be greater than zero")
	}
	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type ProductList struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
