// Package sales reparte los ingresos de un pedido entre las sucursales dueñas de sus líneas.
package sales

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// BranchDelta incremento de ventas para una sucursal.
type BranchDelta struct {
	BranchID string
	Amount   decimal.Decimal
}

// FanOut agrupa las líneas por sucursal y suma price × quantity.
// El resultado sale ordenado por BranchID, que es el orden en que se bloquean las filas.
func FanOut(items []entity.OrderItem) []BranchDelta {
	totals := make(map[string]decimal.Decimal)
	for _, it := range items {
		totals[it.BranchID] = totals[it.BranchID].Add(it.Subtotal())
	}
	out := make([]BranchDelta, 0, len(totals))
	for id, amount := range totals {
		out = append(out, BranchDelta{BranchID: id, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BranchID < out[j].BranchID })
	return out
}
