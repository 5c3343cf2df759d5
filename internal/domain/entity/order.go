package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estados de un pedido. La conciliación solo crea pedidos en pending.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentCashOnDelivery único método de pago soportado.
const PaymentCashOnDelivery = "cash_on_delivery"

// OrderItem snapshot inmutable de una línea: producto, cantidad, precio y sucursal al crear el pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	BranchID  string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal price × quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order pedido inmutable creado desde un carrito no vacío.
type Order struct {
	ID            string
	UserID        string
	Items         []OrderItem
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Status        OrderStatus
	OrderDate     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
