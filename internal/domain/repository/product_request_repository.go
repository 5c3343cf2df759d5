package repository

import (
	"context"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// ProductRequestFilter filtros opcionales (vacío = sin filtrar).
type ProductRequestFilter struct {
	Origin      entity.RequestOrigin
	Status      entity.RequestStatus
	Urgency     entity.Urgency
	BranchID    string
	RequestedBy string
	Limit       int // 0 = sin límite
}

// ProductRequestRepository define el puerto de persistencia de solicitudes de producto
// (ambos orígenes comparten tabla).
type ProductRequestRepository interface {
	Create(ctx context.Context, req *entity.ProductRequest) error
	GetByID(ctx context.Context, id string) (*entity.ProductRequest, error)
	// List más recientes primero.
	List(ctx context.Context, filter ProductRequestFilter) ([]*entity.ProductRequest, error)
	UpdateDecision(ctx context.Context, req *entity.ProductRequest) error
	CountByStatus(ctx context.Context, origin entity.RequestOrigin) (map[entity.RequestStatus]int, error)
	CountPendingByUrgency(ctx context.Context, origin entity.RequestOrigin) (map[entity.Urgency]int, error)
}
