package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

func TestCart_AddMismoProductoConservaPrecio(t *testing.T) {
	now := time.Now()
	c := &entity.Cart{UserID: "u1"}

	c.Add("p1", 2, decimal.NewFromInt(10), now)
	c.Add("p1", 1, decimal.NewFromInt(8), now) // el precio cambió, la línea conserva el primero

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.True(t, c.Items[0].Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(30)))
}

func TestCart_SetQuantityYRemove(t *testing.T) {
	now := time.Now()
	c := &entity.Cart{}
	c.Add("p1", 2, decimal.NewFromInt(10), now)
	c.Add("p2", 1, decimal.NewFromInt(5), now)

	assert.True(t, c.SetQuantity("p2", 4, now))
	assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(40)))
	assert.False(t, c.SetQuantity("nope", 1, now))

	assert.True(t, c.Remove("p1", now))
	assert.False(t, c.Remove("p1", now))
	assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(20)))
}

func TestCart_Clear(t *testing.T) {
	now := time.Now()
	c := &entity.Cart{}
	c.Add("p1", 2, decimal.NewFromInt(10), now)

	c.Clear(now)

	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalAmount.IsZero())
}

func TestCart_NilEsVacio(t *testing.T) {
	var c *entity.Cart
	assert.True(t, c.IsEmpty())
}

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
