package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// Save escribe cabecera y líneas en varias sentencias: usarlo dentro de una tx.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia para carritos.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetByUserID carrito del usuario con sus líneas, (nil, nil) si nunca tuvo uno.
func (r *CartRepo) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.get(ctx, userID, false)
}

// GetByUserIDForUpdate igual que GetByUserID pero bloquea la fila del carrito hasta el fin de la tx.
func (r *CartRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.get(ctx, userID, true)
}

// GetOrCreateForUpdate inserta la cabecera vacía (ON CONFLICT DO NOTHING) y luego la bloquea.
// Sin la fila previa, SELECT FOR UPDATE no bloquea nada y dos altas simultáneas se pisan.
func (r *CartRepo) GetOrCreateForUpdate(ctx context.Context, userID string) (*entity.Cart, error) {
	now := time.Now()
	_, err := r.q.Exec(ctx, `
		INSERT INTO carts (id, user_id, total_amount, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $3)
		ON CONFLICT (user_id) DO NOTHING`,
		uuid.New().String(), userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure cart: %w", err)
	}
	c, err := r.get(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("ensure cart: fila ausente para %s", userID)
	}
	return c, nil
}

func (r *CartRepo) get(ctx context.Context, userID string, lock bool) (*entity.Cart, error) {
	query := `SELECT id, user_id, total_amount, created_at, updated_at FROM carts WHERE user_id = $1`
	if lock {
		query += " FOR UPDATE"
	}
	var c entity.Cart
	err := r.q.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.TotalAmount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT product_id, quantity, price, added_at FROM cart_items WHERE cart_id = $1 ORDER BY position`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()

	c.Items = []entity.CartItem{}
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Price, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	return &c, nil
}

// Save crea o actualiza la cabecera y reemplaza todas las líneas.
func (r *CartRepo) Save(ctx context.Context, c *entity.Cart) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO carts (id, user_id, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET total_amount = EXCLUDED.total_amount, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		c.ID, c.UserID, c.TotalAmount, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	for i, it := range c.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO cart_items (cart_id, position, product_id, quantity, price, added_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, i, it.ProductID, it.Quantity, it.Price, it.AddedAt,
		)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}
	return nil
}
