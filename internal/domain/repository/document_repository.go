package repository

import (
	"context"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	// Create devuelve domain.ErrDocumentOutstanding si el usuario ya tiene uno pendiente o aprobado.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	FindOutstandingByUser(ctx context.Context, userID string) (*entity.Document, error)
	// ListByUser y ListByStatus ordenados por fecha de envío descendente.
	ListByUser(ctx context.Context, userID string) ([]*entity.Document, error)
	ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.Document, error)
	UpdateReview(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id string) error
}
