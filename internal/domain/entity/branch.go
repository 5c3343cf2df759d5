package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Branch sucursal física. TotalSales solo lo incrementa la conciliación de pedidos.
type Branch struct {
	ID         string
	Name       string // único (normalizado)
	Location   string
	TotalSales decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BranchRef vista reducida de una sucursal (id, nombre, ubicación) para respuestas anidadas.
type BranchRef struct {
	ID       string
	Name     string
	Location string
}

// NormalizeName normaliza un nombre (NFC, espacios colapsados) para que la unicidad
// no dependa de la forma Unicode con la que llegó el texto.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
