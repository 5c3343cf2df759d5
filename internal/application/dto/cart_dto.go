package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest entrada de add/update del carrito.
type CartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	AddedAt   time.Time       `json:"addedAt"`
}

// CartResponse carrito del usuario.
type CartResponse struct {
	ID          string             `json:"id,omitempty"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty"`
}

// OrderItemResponse línea snapshot de un pedido.
type OrderItemResponse struct {
	ProductID string              `json:"productId"`
	Product   *ProductRefResponse `json:"product,omitempty"`
	BranchID  string              `json:"branchId"`
	Branch    *BranchRefResponse  `json:"branch,omitempty"`
	Quantity  int                 `json:"quantity"`
	Price     decimal.Decimal     `json:"price"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
}

// OrderResponse pedido.
type OrderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	PaymentMethod string              `json:"paymentMethod"`
	Status        string              `json:"status"`
	OrderDate     time.Time           `json:"orderDate"`
}
