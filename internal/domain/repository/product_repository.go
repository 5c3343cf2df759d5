package repository

import (
	"context"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// ProductFilter filtros del listado de catálogo.
type ProductFilter struct {
	Search     string // subcadena del nombre, sin distinguir mayúsculas
	BranchID   string
	ActiveOnly bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste todos los campos mutables (precios, descuento, stock, is_active).
	Update(ctx context.Context, product *entity.Product) error
	// List ordenado por fecha de creación descendente.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	CountActiveByBranch(ctx context.Context, branchID string) (int, error)
	// GetRefs devuelve id, nombre e imagen de los productos pedidos, activos o no (los inexistentes se omiten).
	GetRefs(ctx context.Context, ids []string) (map[string]entity.ProductRef, error)
}
