package repository

import (
	"context"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para Cart (uno por usuario).
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	// GetByUserIDForUpdate igual que GetByUserID pero bloquea la fila del carrito (SELECT FOR UPDATE).
	GetByUserIDForUpdate(ctx context.Context, userID string) (*entity.Cart, error)
	// GetOrCreateForUpdate crea la fila vacía del carrito si no existe y la bloquea.
	// Dos primeras altas concurrentes del mismo usuario se serializan sobre esa fila.
	GetOrCreateForUpdate(ctx context.Context, userID string) (*entity.Cart, error)
	// Save crea o actualiza el carrito y reemplaza sus líneas.
	Save(ctx context.Context, cart *entity.Cart) error
}
