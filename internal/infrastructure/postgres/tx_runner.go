package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retailflow-api/internal/application/ordering"
	"github.com/jhoicas/retailflow-api/internal/application/payroll"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

var (
	_ ordering.OrderTxRunner  = (*TxRunner)(nil)
	_ payroll.PayrollTxRunner = (*TxRunner)(nil)
	_ usecase.CartTxRunner    = (*TxRunner)(nil)
	_ usecase.ReviewTxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con repos atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la tx, ejecuta fn y hace Commit; cualquier error deja la tx en Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder conciliación de pedido: carrito, productos, pedido y ventas por sucursal en una sola tx.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	branchRepo repository.BranchRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCartRepository(tx), NewProductRepository(tx), NewOrderRepository(tx), NewBranchRepository(tx))
	})
}

// RunCart mutaciones del carrito (cabecera + líneas) de forma atómica.
func (r *TxRunner) RunCart(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCartRepository(tx), NewProductRepository(tx))
	})
}

// RunPayroll saldo e historial de salario en la misma tx.
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(userRepo repository.UserRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx))
	})
}

// RunReview revisión de documento y verificación del usuario en la misma tx.
func (r *TxRunner) RunReview(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewDocumentRepository(tx), NewUserRepository(tx))
	})
}
