package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Catalog entities: các bảng lookup dùng chung cho products/variants.

type Brand struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Color struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	HexCode string `json:"hex_code" db:"hex_code"`
}

type Size struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	// SortOrder để S < M < L < XL hiển thị đúng thứ tự
	SortOrder int `json:"sort_order" db:"sort_order"`
}

// ========================================
// REQUEST DTOs
// ========================================

type CreateBrandRequest struct {
	Name string `json:"name"`
}

func (r CreateBrandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type CreateColorRequest struct {
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

func (r CreateColorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.HexCode, validation.Required, validation.Match(hexColorPattern)),
	)
}

type CreateSizeRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func (r CreateSizeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 20)),
		validation.Field(&r.SortOrder, validation.Min(0)),
	)
}
