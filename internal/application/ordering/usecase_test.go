package ordering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/application/apptest"
	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/ordering"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

type memGuard struct {
	keys     map[string]bool
	released []string
}

func newMemGuard() *memGuard { return &memGuard{keys: map[string]bool{}} }

func (g *memGuard) Acquire(_ context.Context, key string) (bool, error) {
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true
	return true, nil
}

func (g *memGuard) Release(_ context.Context, key string) error {
	delete(g.keys, key)
	g.released = append(g.released, key)
	return nil
}

type fixture struct {
	store *apptest.Store
	uc    *ordering.OrderUseCase
	guard *memGuard
	user  *entity.User
	x, y  *entity.Branch
	other *entity.Branch
}

// Carrito del escenario de referencia: A qty 2 × 10 (sucursal X), B qty 1 × 5 (sucursal Y), total 25.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := apptest.NewStore()
	f := &fixture{store: s, guard: newMemGuard()}
	f.x = s.AddBranch("X")
	f.y = s.AddBranch("Y")
	f.other = s.AddBranch("Z")
	f.user = s.AddUser("cliente", entity.RoleCustomer)
	a := s.AddProduct("A", f.x.ID, decimal.NewFromInt(10))
	b := s.AddProduct("B", f.y.ID, decimal.NewFromInt(5))

	cart := &entity.Cart{UserID: f.user.ID}
	now := time.Now()
	cart.Add(a.ID, 2, decimal.NewFromInt(10), now)
	cart.Add(b.ID, 1, decimal.NewFromInt(5), now)
	s.PutCart(cart)

	f.uc = ordering.NewOrderUseCase(apptest.TxRunner{S: s}, s.OrderRepo(), s.ProductRepo(), s.BranchRepo(), f.guard, nil)
	return f
}

func TestPlaceOrder_EscenarioDosSucursales(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.NoError(t, err)

	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, entity.PaymentCashOnDelivery, out.PaymentMethod)
	require.Len(t, out.Items, 2)
	assert.Equal(t, f.x.ID, out.Items[0].BranchID)
	assert.Equal(t, f.y.ID, out.Items[1].BranchID)
	require.NotNil(t, out.Items[0].Product)
	assert.Equal(t, "A", out.Items[0].Product.Name)
	require.NotNil(t, out.Items[0].Branch)
	assert.Equal(t, dto.BranchRefResponse{ID: f.x.ID, Name: "X", Location: "X centro"}, *out.Items[0].Branch)
	require.NotNil(t, out.Items[1].Product)
	assert.Equal(t, "B", out.Items[1].Product.Name)
	require.NotNil(t, out.Items[1].Branch)
	assert.Equal(t, "Y", out.Items[1].Branch.Name)

	assert.True(t, f.store.TotalSales(f.x.ID).Equal(decimal.NewFromInt(20)))
	assert.True(t, f.store.TotalSales(f.y.ID).Equal(decimal.NewFromInt(5)))
	assert.True(t, f.store.TotalSales(f.other.ID).IsZero(), "una sucursal ajena no cambia")

	cart := f.store.Carts[f.user.ID]
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.IsZero())
	assert.Len(t, f.store.Orders, 1)
}

func TestPlaceOrder_SnapshotNoSigueAlProducto(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.NoError(t, err)

	// Cambiar el precio después no altera el pedido ya creado.
	for _, p := range f.store.Products {
		p.OriginalPrice = decimal.NewFromInt(999)
	}
	got, err := f.uc.Get(context.Background(), f.user.ID, out.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestPlaceOrder_CarritoVacio(t *testing.T) {
	f := newFixture(t)
	stranger := f.store.AddUser("sin-carrito", entity.RoleCustomer)

	_, err := f.uc.PlaceOrder(context.Background(), stranger.ID, "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	// Vaciado y vuelto a intentar: también EmptyCart.
	_, err = f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.NoError(t, err)
	_, err = f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.True(t, f.store.TotalSales(f.x.ID).Equal(decimal.NewFromInt(20)), "el segundo intento no suma nada")
}

func TestPlaceOrder_FallaIncrementoHaceRollback(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("db caída")
	f.store.Fail(apptest.OpBranchIncrement, boom)

	_, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.ErrorIs(t, err, boom)

	assert.Empty(t, f.store.Orders, "sin pedido")
	assert.True(t, f.store.TotalSales(f.x.ID).IsZero())
	assert.True(t, f.store.TotalSales(f.y.ID).IsZero())
	assert.Len(t, f.store.Carts[f.user.ID].Items, 2, "el carrito queda intacto")
}

func TestPlaceOrder_FallaCreacionNoTocaSucursales(t *testing.T) {
	f := newFixture(t)
	f.store.Fail(apptest.OpOrderCreate, errors.New("insert falló"))

	_, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.Error(t, err)

	assert.Zero(t, f.store.Calls[apptest.OpBranchIncrement])
	assert.Len(t, f.store.Carts[f.user.ID].Items, 2)
}

func TestPlaceOrder_FallaVaciadoHaceRollback(t *testing.T) {
	f := newFixture(t)
	f.store.Fail(apptest.OpCartSave, errors.New("save falló"))

	_, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.Error(t, err)

	assert.Empty(t, f.store.Orders)
	assert.True(t, f.store.TotalSales(f.x.ID).IsZero())
}

func TestPlaceOrder_IdempotencyKey(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "k1")
	require.NoError(t, err)

	_, err = f.uc.PlaceOrder(context.Background(), f.user.ID, "k1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.store.Orders, 1)
	assert.True(t, f.store.TotalSales(f.x.ID).Equal(decimal.NewFromInt(20)))
}

func TestPlaceOrder_IdempotencyKeySeLiberaAlFallar(t *testing.T) {
	f := newFixture(t)
	stranger := f.store.AddUser("vacio", entity.RoleCustomer)

	_, err := f.uc.PlaceOrder(context.Background(), stranger.ID, "k1")
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.Len(t, f.guard.released, 1)
	assert.Empty(t, f.guard.keys)
}

func TestPlaceOrder_TotalDelCarritoManda(t *testing.T) {
	f := newFixture(t)
	cart := f.store.Carts[f.user.ID]
	cart.TotalAmount = decimal.NewFromInt(24) // desalineado con las líneas (25)

	out, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(24)))
}

func TestGet_PedidoAjenoEsNotFound(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.NoError(t, err)

	other := f.store.AddUser("otro", entity.RoleCustomer)
	_, err = f.uc.Get(context.Background(), other.ID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mine, err := f.uc.ListMine(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Items[0].Product)
	assert.Equal(t, "A", mine[0].Items[0].Product.Name)
	require.NotNil(t, mine[0].Items[0].Branch)
	assert.Equal(t, "X centro", mine[0].Items[0].Branch.Location)

	got, err := f.uc.Get(context.Background(), f.user.ID, out.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Items[1].Branch)
	assert.Equal(t, f.y.ID, got.Items[1].Branch.ID)
}

func TestGet_ProductoDesactivadoConservaNombre(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.PlaceOrder(context.Background(), f.user.ID, "")
	require.NoError(t, err)

	for _, p := range f.store.Products {
		p.IsActive = false
	}
	got, err := f.uc.Get(context.Background(), f.user.ID, out.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "A", got.Items[0].Product.Name)
}
