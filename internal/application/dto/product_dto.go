package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (llega como multipart).
type CreateProductRequest struct {
	Name          string
	Description   string
	OriginalPrice decimal.Decimal
	BranchID      string
	Stock         int
}

// SetDiscountRequest porcentaje de descuento 0..100.
type SetDiscountRequest struct {
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
}

// ProductResponse salida de un producto con su precio final.
type ProductResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Image              string             `json:"image,omitempty"`
	OriginalPrice      decimal.Decimal    `json:"originalPrice"`
	DiscountPercentage decimal.Decimal    `json:"discountPercentage"`
	DiscountPrice      decimal.Decimal    `json:"discountPrice"`
	FinalPrice         decimal.Decimal    `json:"finalPrice"`
	Branch             *BranchRefResponse `json:"branch,omitempty"`
	Stock              int                `json:"stock"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// ProductRefResponse producto anidado en una línea de pedido.
type ProductRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}
