package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/sales"
)

func item(product, branch string, qty int, price string) entity.OrderItem {
	return entity.OrderItem{ProductID: product, BranchID: branch, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func TestFanOut_DosSucursales(t *testing.T) {
	deltas := sales.FanOut([]entity.OrderItem{
		item("A", "branch-x", 2, "10"),
		item("B", "branch-y", 1, "5"),
	})

	require.Len(t, deltas, 2)
	assert.Equal(t, "branch-x", deltas[0].BranchID)
	assert.True(t, deltas[0].Amount.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "branch-y", deltas[1].BranchID)
	assert.True(t, deltas[1].Amount.Equal(decimal.NewFromInt(5)))
}

func TestFanOut_AgrupaMismaSucursal(t *testing.T) {
	deltas := sales.FanOut([]entity.OrderItem{
		item("A", "b2", 3, "1.50"),
		item("B", "b1", 1, "0.25"),
		item("C", "b2", 2, "2.00"),
	})

	require.Len(t, deltas, 2)
	assert.Equal(t, "b1", deltas[0].BranchID, "salida ordenada por sucursal")
	assert.Equal(t, "0.25", deltas[0].Amount.StringFixed(2))
	assert.Equal(t, "8.50", deltas[1].Amount.StringFixed(2))
}

func TestFanOut_SinLineas(t *testing.T) {
	assert.Empty(t, sales.FanOut(nil))
}
