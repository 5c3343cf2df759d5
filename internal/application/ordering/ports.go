package ordering

import (
	"context"

	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// OrderTxRunner ejecuta la conciliación dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún efecto: ni pedido, ni ventas por sucursal, ni carrito vaciado.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		branchRepo repository.BranchRepository,
	) error) error
}

// IdempotencyGuard reserva una clave de idempotencia por un tiempo limitado.
// Acquire devuelve false si la clave ya estaba reservada.
type IdempotencyGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
