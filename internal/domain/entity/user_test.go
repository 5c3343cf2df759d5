package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	r, err := entity.ParseRole(" Employee ")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, r)

	_, err = entity.ParseRole("user")
	assert.Error(t, err)
}

func TestUser_IsAssignedTo(t *testing.T) {
	branch := "b1"
	u := &entity.User{Role: entity.RoleEmployee, AssignedBranchID: &branch}
	assert.True(t, u.IsAssignedTo("b1"))
	assert.False(t, u.IsAssignedTo("b2"))
	assert.False(t, (&entity.User{}).IsAssignedTo("b1"))
}

func TestNormalizeName(t *testing.T) {
	// "é" descompuesta (e + acento combinante) y espacios extra
	assert.Equal(t, "Sucursal Caf\u00e9", entity.NormalizeName("  Sucursal   Cafe\u0301 "))
}

func TestProduct_RepriceYFinalPrice(t *testing.T) {
	p := &entity.Product{}
	p.OriginalPrice = mustDec("50")
	p.DiscountPercentage = mustDec("20")
	p.Reprice()
	assert.Equal(t, "40.00", p.FinalPrice().StringFixed(2))

	p.DiscountPercentage = mustDec("0")
	p.Reprice()
	assert.Equal(t, "50.00", p.FinalPrice().StringFixed(2))
}

func TestProduct_RepriceRedondeaPorcentaje(t *testing.T) {
	p := &entity.Product{OriginalPrice: mustDec("200"), DiscountPercentage: mustDec("12.345")}
	p.Reprice()

	assert.Equal(t, "12.35", p.DiscountPercentage.StringFixed(2))
	// 200 × (1 − 0.1235); con 12.345 sin redondear daría 175.31
	assert.Equal(t, "175.30", p.DiscountPrice.StringFixed(2))
}

func TestRequestOrigin_Outcomes(t *testing.T) {
	_, ok := entity.ParseOutcome("fulfilled", entity.OriginBranch.Outcomes()...)
	assert.False(t, ok, "las solicitudes de sucursal no se marcan como cumplidas")

	st, ok := entity.ParseOutcome("FULFILLED", entity.OriginEmployee.Outcomes()...)
	assert.True(t, ok)
	assert.Equal(t, entity.StatusFulfilled, st)
}

func TestParseUrgency(t *testing.T) {
	u, ok := entity.ParseUrgency("")
	assert.True(t, ok)
	assert.Equal(t, entity.UrgencyMedium, u)

	_, ok = entity.ParseUrgency("critical")
	assert.False(t, ok)
}
