package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de persistencia para documentos.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, user_id, file_name, file_path, file_type, status, submission_date, review_date, reviewed_by, created_at, updated_at`

// Create persiste un documento. El índice único parcial garantiza un solo pendiente/aprobado por usuario.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.UserID, d.FileName, d.FilePath, d.FileType, d.Status, d.SubmissionDate,
		d.ReviewDate, d.ReviewedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == "documents_one_outstanding_per_user" {
			return domain.ErrDocumentOutstanding
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// FindOutstandingByUser documento pendiente o aprobado del usuario, si existe.
func (r *DocumentRepo) FindOutstandingByUser(ctx context.Context, userID string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE user_id = $1 AND status IN ('pending', 'approved') LIMIT 1`, userID))
	if err != nil {
		return nil, fmt.Errorf("find outstanding document: %w", err)
	}
	return d, nil
}

// ListByUser documentos del usuario, más recientes primero.
func (r *DocumentRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents WHERE user_id = $1 ORDER BY submission_date DESC`, userID)
}

// ListByStatus documentos en un estado, más recientes primero.
func (r *DocumentRepo) ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents WHERE status = $1 ORDER BY submission_date DESC`, status)
}

// UpdateReview persiste el resultado de la revisión.
func (r *DocumentRepo) UpdateReview(ctx context.Context, d *entity.Document) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE documents SET status = $2, review_date = $3, reviewed_by = $4, updated_at = $5
		WHERE id = $1`,
		d.ID, d.Status, d.ReviewDate, d.ReviewedBy, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro (el archivo lo borra el caso de uso).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.UserID, &d.FileName, &d.FilePath, &d.FileType, &d.Status, &d.SubmissionDate,
		&d.ReviewDate, &d.ReviewedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
