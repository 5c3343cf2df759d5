package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de persistencia para sucursales.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, name, location, total_sales, created_at, updated_at`

// Create persiste una sucursal. Nombre repetido -> domain.ErrDuplicate.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO branches (`+branchColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, b.Location, b.TotalSales, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// GetByName obtiene una sucursal por nombre exacto (ya normalizado).
func (r *BranchRepo) GetByName(ctx context.Context, name string) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE name = $1`, name))
	if err != nil {
		return nil, fmt.Errorf("get branch by name: %w", err)
	}
	return b, nil
}

// List todas las sucursales, más recientes primero.
func (r *BranchRepo) List(ctx context.Context) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, `SELECT `+branchColumns+` FROM branches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetRefs devuelve la vista reducida de las sucursales pedidas.
func (r *BranchRepo) GetRefs(ctx context.Context, ids []string) (map[string]entity.BranchRef, error) {
	refs := make(map[string]entity.BranchRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id, name, location FROM branches WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("get branch refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref entity.BranchRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Location); err != nil {
			return nil, fmt.Errorf("scan branch ref: %w", err)
		}
		refs[ref.ID] = ref
	}
	return refs, rows.Err()
}

// IncrementTotalSales suma amount en la misma sentencia (sin leer-modificar-escribir).
func (r *BranchRepo) IncrementTotalSales(ctx context.Context, id string, amount decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE branches SET total_sales = total_sales + $2, updated_at = now() WHERE id = $1`, id, amount)
	if err != nil {
		return fmt.Errorf("increment total sales: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBranchNotFound
	}
	return nil
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	err := row.Scan(&b.ID, &b.Name, &b.Location, &b.TotalSales, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
