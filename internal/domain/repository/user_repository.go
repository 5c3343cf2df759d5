package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListByRole ordenado por fecha de creación descendente.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
	ListByBranch(ctx context.Context, branchID string) ([]*entity.User, error)
	SetAssignedBranch(ctx context.Context, userID, branchID string) error
	// AddToWallet suma amount al saldo y devuelve el saldo resultante.
	AddToWallet(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	SetVerified(ctx context.Context, userID string) error
	AddSalaryPayment(ctx context.Context, payment *entity.SalaryPayment) error
	// ListSalaryPayments más recientes primero.
	ListSalaryPayments(ctx context.Context, userID string) ([]*entity.SalaryPayment, error)
}
