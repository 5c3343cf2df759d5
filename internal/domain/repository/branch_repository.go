package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	GetByName(ctx context.Context, name string) (*entity.Branch, error)
	List(ctx context.Context) ([]*entity.Branch, error)
	// GetRefs devuelve id, nombre y ubicación de las sucursales pedidas (las inexistentes se omiten).
	GetRefs(ctx context.Context, ids []string) (map[string]entity.BranchRef, error)
	// IncrementTotalSales suma amount a total_sales de forma atómica. ErrBranchNotFound si no existe.
	IncrementTotalSales(ctx context.Context, id string, amount decimal.Decimal) error
}
