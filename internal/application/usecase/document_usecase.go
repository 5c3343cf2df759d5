package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
	"github.com/jhoicas/retailflow-api/pkg/logger"
)

// DocumentUseCase verificación de identidad: envío de PDF y revisión del administrador.
type DocumentUseCase struct {
	repo     repository.DocumentRepository
	txRunner ReviewTxRunner
	files    FileStore
	log      *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository, txRunner ReviewTxRunner, files FileStore, log *logger.Logger) *DocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{repo: repo, txRunner: txRunner, files: files, log: log}
}

// Submit guarda el PDF y crea el documento pending.
// ErrDocumentOutstanding si ya hay uno pendiente o aprobado; tras un rechazo se permite reenviar.
func (uc *DocumentUseCase) Submit(ctx context.Context, userID string, up Upload) (*dto.DocumentResponse, error) {
	outstanding, err := uc.repo.FindOutstandingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if outstanding != nil {
		return nil, domain.ErrDocumentOutstanding
	}

	path, err := uc.files.Save(ctx, FileKindPDF, up)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	doc := &entity.Document{
		ID:             uuid.New().String(),
		UserID:         userID,
		FileName:       filepath.Base(up.FileName),
		FilePath:       path,
		FileType:       "pdf",
		Status:         entity.StatusPending,
		SubmissionDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// El índice único resuelve envíos simultáneos: el perdedor recibe ErrDocumentOutstanding.
	if err := uc.repo.Create(ctx, doc); err != nil {
		_ = uc.files.Remove(ctx, path)
		return nil, err
	}
	out := toDocumentResponse(doc)
	return &out, nil
}

// ListMine documentos del usuario, más recientes primero.
func (uc *DocumentUseCase) ListMine(ctx context.Context, userID string) ([]dto.DocumentResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(list), nil
}

// ListPending documentos pendientes de revisión, más recientes primero.
func (uc *DocumentUseCase) ListPending(ctx context.Context) ([]dto.DocumentResponse, error) {
	list, err := uc.repo.ListByStatus(ctx, entity.StatusPending)
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(list), nil
}

// Review aprueba o rechaza un documento pendiente. La aprobación verifica al usuario en la misma tx.
func (uc *DocumentUseCase) Review(ctx context.Context, adminID, docID string, in dto.DecisionRequest) (*dto.DocumentResponse, error) {
	outcome, ok := entity.ParseOutcome(in.Status, entity.DocumentOutcomes...)
	if !ok {
		return nil, fmt.Errorf("%w: status debe ser approved o rejected", domain.ErrInvalidInput)
	}

	var doc *entity.Document
	err := uc.txRunner.RunReview(ctx, func(docRepo repository.DocumentRepository, userRepo repository.UserRepository) error {
		var err error
		if doc, err = docRepo.GetByID(ctx, docID); err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento", domain.ErrNotFound)
		}
		if doc.Status != entity.StatusPending {
			return fmt.Errorf("%w: el documento ya fue revisado", domain.ErrConflict)
		}
		now := time.Now()
		reviewer := adminID
		doc.Status = outcome
		doc.ReviewDate = &now
		doc.ReviewedBy = &reviewer
		doc.UpdatedAt = now
		if err := docRepo.UpdateReview(ctx, doc); err != nil {
			return err
		}
		if outcome == entity.StatusApproved {
			return userRepo.SetVerified(ctx, doc.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("document_id", doc.ID).Str("user_id", doc.UserID).Str("status", string(doc.Status)).Msg("documento revisado")
	out := toDocumentResponse(doc)
	return &out, nil
}

// Delete elimina el documento y su archivo.
func (uc *DocumentUseCase) Delete(ctx context.Context, docID string) error {
	doc, err := uc.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: documento", domain.ErrNotFound)
	}
	if err := uc.repo.Delete(ctx, docID); err != nil {
		return err
	}
	if err := uc.files.Remove(ctx, doc.FilePath); err != nil {
		uc.log.Warn().Err(err).Str("path", doc.FilePath).Msg("no se pudo borrar el archivo del documento")
	}
	return nil
}

func toDocumentResponses(list []*entity.Document) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDocumentResponse(d))
	}
	return out
}
