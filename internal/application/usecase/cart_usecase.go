package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// CartUseCase carrito por usuario. Cada línea fija el precio final del producto al agregarse.
type CartUseCase struct {
	txRunner CartTxRunner
	cartRepo repository.CartRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(txRunner CartTxRunner, cartRepo repository.CartRepository) *CartUseCase {
	return &CartUseCase{txRunner: txRunner, cartRepo: cartRepo}
}

// Get devuelve el carrito; si nunca tuvo uno, un carrito vacío.
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Add agrega el producto o suma cantidad a la línea existente (que conserva su precio).
func (uc *CartUseCase) Add(ctx context.Context, userID string, in dto.CartItemRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" || in.Quantity < 1 {
		return nil, fmt.Errorf("%w: productId y quantity >= 1 son requeridos", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, userID, func(cart *entity.Cart, products repository.ProductRepository, now time.Time) error {
		product, err := products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return domain.ErrProductNotFound
		}
		cart.Add(product.ID, in.Quantity, product.FinalPrice(), now)
		return nil
	})
}

// Update reemplaza la cantidad de una línea existente.
func (uc *CartUseCase) Update(ctx context.Context, userID string, in dto.CartItemRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" || in.Quantity < 1 {
		return nil, fmt.Errorf("%w: productId y quantity >= 1 son requeridos", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, userID, func(cart *entity.Cart, _ repository.ProductRepository, now time.Time) error {
		if !cart.SetQuantity(in.ProductID, in.Quantity, now) {
			return fmt.Errorf("%w: el producto no está en el carrito", domain.ErrNotFound)
		}
		return nil
	})
}

// Remove quita la línea del producto.
func (uc *CartUseCase) Remove(ctx context.Context, userID, productID string) (*dto.CartResponse, error) {
	return uc.mutate(ctx, userID, func(cart *entity.Cart, _ repository.ProductRepository, now time.Time) error {
		if !cart.Remove(productID, now) {
			return fmt.Errorf("%w: el producto no está en el carrito", domain.ErrNotFound)
		}
		return nil
	})
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) (*dto.CartResponse, error) {
	return uc.mutate(ctx, userID, func(cart *entity.Cart, _ repository.ProductRepository, now time.Time) error {
		cart.Clear(now)
		return nil
	})
}

// mutate crea el carrito si hace falta, lo bloquea, aplica fn y lo guarda en la misma transacción.
func (uc *CartUseCase) mutate(
	ctx context.Context,
	userID string,
	fn func(cart *entity.Cart, products repository.ProductRepository, now time.Time) error,
) (*dto.CartResponse, error) {
	var cart *entity.Cart
	err := uc.txRunner.RunCart(ctx, func(cartRepo repository.CartRepository, productRepo repository.ProductRepository) error {
		var err error
		if cart, err = cartRepo.GetOrCreateForUpdate(ctx, userID); err != nil {
			return err
		}
		now := time.Now()
		if err := fn(cart, productRepo, now); err != nil {
			return err
		}
		return cartRepo.Save(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

func toCartResponse(c *entity.Cart) *dto.CartResponse {
	out := &dto.CartResponse{Items: []dto.CartItemResponse{}, TotalAmount: decimal.Zero}
	if c == nil {
		return out
	}
	out.ID = c.ID
	out.TotalAmount = c.TotalAmount
	updated := c.UpdatedAt
	out.UpdatedAt = &updated
	for _, it := range c.Items {
		out.Items = append(out.Items, dto.CartItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
			AddedAt:   it.AddedAt,
		})
	}
	return out
}
