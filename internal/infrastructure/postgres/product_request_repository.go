package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

var _ repository.ProductRequestRepository = (*ProductRequestRepo)(nil)

// ProductRequestRepo solicitudes de producto de ambos orígenes (tabla product_requests).
type ProductRequestRepo struct {
	q Querier
}

// NewProductRequestRepository construye el adaptador de persistencia para solicitudes de producto.
func NewProductRequestRepository(q Querier) *ProductRequestRepo {
	return &ProductRequestRepo{q: q}
}

const productRequestColumns = `id, origin, requested_by, branch_id, product_name, quantity, category, description,
	urgency, status, admin_response, response_date, created_at, updated_at`

// Create persiste una solicitud.
func (r *ProductRequestRepo) Create(ctx context.Context, pr *entity.ProductRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_requests (`+productRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		pr.ID, pr.Origin, pr.RequestedBy, pr.BranchID, pr.ProductName, pr.Quantity, pr.Category,
		pr.Description, pr.Urgency, pr.Status, pr.AdminResponse, pr.ResponseDate, pr.CreatedAt, pr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *ProductRequestRepo) GetByID(ctx context.Context, id string) (*entity.ProductRequest, error) {
	pr, err := scanProductRequest(r.q.QueryRow(ctx,
		`SELECT `+productRequestColumns+` FROM product_requests WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product request: %w", err)
	}
	return pr, nil
}

// List aplica los filtros no vacíos; más recientes primero.
func (r *ProductRequestRepo) List(ctx context.Context, f repository.ProductRequestFilter) ([]*entity.ProductRequest, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.Origin != "" {
		add("origin", f.Origin)
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.Urgency != "" {
		add("urgency", f.Urgency)
	}
	if f.BranchID != "" {
		add("branch_id", f.BranchID)
	}
	if f.RequestedBy != "" {
		add("requested_by", f.RequestedBy)
	}

	query := `SELECT ` + productRequestColumns + ` FROM product_requests`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductRequest
	for rows.Next() {
		pr, err := scanProductRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product request: %w", err)
		}
		list = append(list, pr)
	}
	return list, rows.Err()
}

// UpdateDecision persiste estado, respuesta y fecha de respuesta.
func (r *ProductRequestRepo) UpdateDecision(ctx context.Context, pr *entity.ProductRequest) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE product_requests SET status = $2, admin_response = $3, response_date = $4, updated_at = $5
		WHERE id = $1`,
		pr.ID, pr.Status, pr.AdminResponse, pr.ResponseDate, pr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus conteo por estado para un origen.
func (r *ProductRequestRepo) CountByStatus(ctx context.Context, origin entity.RequestOrigin) (map[entity.RequestStatus]int, error) {
	rows, err := r.q.Query(ctx,
		`SELECT status, COUNT(*) FROM product_requests WHERE origin = $1 GROUP BY status`, origin)
	if err != nil {
		return nil, fmt.Errorf("count product requests: %w", err)
	}
	defer rows.Close()

	out := map[entity.RequestStatus]int{}
	for rows.Next() {
		var (
			st entity.RequestStatus
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[st] = n
	}
	return out, rows.Err()
}

// CountPendingByUrgency conteo de pendientes por urgencia para un origen.
func (r *ProductRequestRepo) CountPendingByUrgency(ctx context.Context, origin entity.RequestOrigin) (map[entity.Urgency]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT urgency, COUNT(*) FROM product_requests
		WHERE origin = $1 AND status = 'pending' GROUP BY urgency`, origin)
	if err != nil {
		return nil, fmt.Errorf("count pending by urgency: %w", err)
	}
	defer rows.Close()

	out := map[entity.Urgency]int{}
	for rows.Next() {
		var (
			u entity.Urgency
			n int
		)
		if err := rows.Scan(&u, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[u] = n
	}
	return out, rows.Err()
}

func scanProductRequest(row pgx.Row) (*entity.ProductRequest, error) {
	var pr entity.ProductRequest
	err := row.Scan(
		&pr.ID, &pr.Origin, &pr.RequestedBy, &pr.BranchID, &pr.ProductName, &pr.Quantity, &pr.Category,
		&pr.Description, &pr.Urgency, &pr.Status, &pr.AdminResponse, &pr.ResponseDate, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &pr, nil
}
