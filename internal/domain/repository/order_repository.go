package repository

import (
	"context"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByIDForUser solo devuelve el pedido si pertenece al usuario.
	GetByIDForUser(ctx context.Context, id, userID string) (*entity.Order, error)
	// ListByUser más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
}
