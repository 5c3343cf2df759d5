package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea del carrito. Price queda fijo al precio final del producto al momento de agregar.
type CartItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	AddedAt   time.Time
}

// Subtotal price × quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart canasta mutable de un usuario (uno por usuario).
type Cart struct {
	ID          string
	UserID      string
	Items       []CartItem
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Add agrega una línea o suma cantidad a la existente (conservando su precio original).
func (c *Cart) Add(productID string, quantity int, price decimal.Decimal, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.recalc(now)
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity, Price: price, AddedAt: now})
	c.recalc(now)
}

// SetQuantity reemplaza la cantidad de una línea. Devuelve false si la línea no existe.
func (c *Cart) SetQuantity(productID string, quantity int, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.recalc(now)
			return true
		}
	}
	return false
}

// Remove quita la línea del producto. Devuelve false si no existía.
func (c *Cart) Remove(productID string, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recalc(now)
			return true
		}
	}
	return false
}

// Clear vacía el carrito (líneas vacías, total cero).
func (c *Cart) Clear(now time.Time) {
	c.Items = []CartItem{}
	c.TotalAmount = decimal.Zero
	c.UpdatedAt = now
}

// LinesTotal Σ price × quantity de las líneas actuales.
func (c *Cart) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) recalc(now time.Time) {
	c.TotalAmount = c.LinesTotal()
	c.UpdatedAt = now
}
