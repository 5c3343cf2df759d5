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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, email, password_hash, role, assigned_branch_id, wallet_amount, is_verified, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.AssignedBranchID,
		user.WalletAmount, user.IsVerified, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListByRole lista usuarios de un rol, más recientes primero.
func (r *UserRepo) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`, role)
}

// ListByBranch lista los empleados asignados a una sucursal.
func (r *UserRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE assigned_branch_id = $1 AND role = 'employee' ORDER BY name`, branchID)
}

// SetAssignedBranch asigna (o reasigna) la sucursal del usuario.
func (r *UserRepo) SetAssignedBranch(ctx context.Context, userID, branchID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET assigned_branch_id = $2, updated_at = now() WHERE id = $1`, userID, branchID)
	if err != nil {
		return fmt.Errorf("assign branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddToWallet suma amount al saldo en una sola sentencia y devuelve el saldo resultante.
func (r *UserRepo) AddToWallet(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE users SET wallet_amount = wallet_amount + $2, updated_at = now() WHERE id = $1 RETURNING wallet_amount`,
		userID, amount,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("add to wallet: %w", err)
	}
	return balance, nil
}

// SetVerified marca al usuario como verificado.
func (r *UserRepo) SetVerified(ctx context.Context, userID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET is_verified = TRUE, updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddSalaryPayment agrega una entrada al historial de salarios.
func (r *UserRepo) AddSalaryPayment(ctx context.Context, p *entity.SalaryPayment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO salary_payments (id, user_id, amount, note, date) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.UserID, p.Amount, p.Note, p.Date,
	)
	if err != nil {
		return fmt.Errorf("insert salary payment: %w", err)
	}
	return nil
}

// ListSalaryPayments historial de salarios, más recientes primero.
func (r *UserRepo) ListSalaryPayments(ctx context.Context, userID string) ([]*entity.SalaryPayment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, amount, note, date FROM salary_payments WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list salary payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.SalaryPayment
	for rows.Next() {
		var p entity.SalaryPayment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Amount, &p.Note, &p.Date); err != nil {
			return nil, fmt.Errorf("scan salary payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// scanUser devuelve (nil, nil) si no hay fila.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.AssignedBranchID,
		&u.WalletAmount, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
