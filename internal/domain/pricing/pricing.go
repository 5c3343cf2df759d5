// Package pricing reglas puras de precio del catálogo (servicio de dominio).
package pricing

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
)

// ValidPercentage indica si el porcentaje de descuento está en [0, 100].
func ValidPercentage(pct decimal.Decimal) bool {
	return !pct.IsNegative() && pct.LessThanOrEqual(hundred)
}

// RoundPercentage lleva el porcentaje a la escala de la columna NUMERIC(5,2).
// El precio con descuento se calcula siempre sobre el porcentaje ya redondeado.
func RoundPercentage(pct decimal.Decimal) decimal.Decimal {
	return pct.Round(2)
}

// DiscountPrice = original × (1 − pct/100) si pct > 0; si no, 0 (sin descuento).
// Se redondea a centavos, igual que la columna NUMERIC(14,2).
func DiscountPrice(original, pct decimal.Decimal) decimal.Decimal {
	if !pct.IsPositive() {
		return decimal.Zero
	}
	return original.Sub(original.Mul(pct).Div(hundred)).Round(2)
}

// FinalPrice precio efectivo: el precio con descuento si es distinto de cero, si no el original.
// Es la única definición; catálogo, carrito y pedidos la usan por igual.
func FinalPrice(original, discountPrice decimal.Decimal) decimal.Decimal {
	if !discountPrice.IsZero() {
		return discountPrice
	}
	return original
}
