package ordering

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
	"github.com/jhoicas/retailflow-api/internal/domain/sales"
	"github.com/jhoicas/retailflow-api/pkg/logger"
)

// OrderUseCase convierte el carrito en un pedido inmutable y reparte la venta entre sucursales.
type OrderUseCase struct {
	txRunner    OrderTxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	guard       IdempotencyGuard // opcional
	log         *logger.Logger
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso. guard puede ser nil (sin Idempotency-Key).
func NewOrderUseCase(
	txRunner OrderTxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	guard IdempotencyGuard,
	log *logger.Logger,
) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		guard:       guard,
		log:         log,
		now:         time.Now,
	}
}

// PlaceOrder ejecuta la conciliación completa en una sola transacción:
// bloquea el carrito, toma el snapshot de cada línea (precio del carrito, sucursal actual del producto),
// crea el pedido pending, incrementa total_sales de cada sucursal involucrada y vacía el carrito.
// idempotencyKey vacío desactiva la guardia.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, userID, idempotencyKey string) (*dto.OrderResponse, error) {
	guardKey := ""
	if idempotencyKey != "" && uc.guard != nil {
		guardKey = "order:" + userID + ":" + idempotencyKey
		ok, err := uc.guard.Acquire(ctx, guardKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency guard: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: pedido ya enviado con esa Idempotency-Key", domain.ErrConflict)
		}
	}

	var (
		order *entity.Order
		refs  lineRefs
	)
	err := uc.txRunner.RunOrder(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		branchRepo repository.BranchRepository,
	) error {
		cart, err := cartRepo.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}

		now := uc.now()
		order = &entity.Order{
			ID:            uuid.New().String(),
			UserID:        userID,
			Items:         make([]entity.OrderItem, 0, len(cart.Items)),
			TotalAmount:   cart.TotalAmount,
			PaymentMethod: entity.PaymentCashOnDelivery,
			Status:        entity.OrderStatusPending,
			OrderDate:     now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for _, line := range cart.Items {
			product, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, line.ProductID)
			}
			order.Items = append(order.Items, entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: line.ProductID,
				BranchID:  product.BranchID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			})
		}

		// El total del carrito manda; una diferencia con las líneas solo se reporta.
		if lines := cart.LinesTotal(); !lines.Equal(cart.TotalAmount) {
			uc.log.Warn().
				Str("user_id", userID).
				Str("cart_total", cart.TotalAmount.String()).
				Str("lines_total", lines.String()).
				Msg("total del carrito distinto a la suma de sus líneas")
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, d := range sales.FanOut(order.Items) {
			if err := branchRepo.IncrementTotalSales(ctx, d.BranchID, d.Amount); err != nil {
				return fmt.Errorf("branch %s: %w", d.BranchID, err)
			}
		}

		cart.Clear(now)
		if err := cartRepo.Save(ctx, cart); err != nil {
			return err
		}
		refs, err = loadLineRefs(ctx, productRepo, branchRepo, order)
		return err
	})
	if err != nil {
		if guardKey != "" {
			if rerr := uc.guard.Release(ctx, guardKey); rerr != nil {
				uc.log.Warn().Err(rerr).Str("key", guardKey).Msg("no se pudo liberar la clave de idempotencia")
			}
		}
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Str("total", order.TotalAmount.String()).
		Int("items", len(order.Items)).
		Msg("pedido creado")
	return toOrderResponse(order, refs), nil
}

// ListMine pedidos del usuario, más recientes primero.
func (uc *OrderUseCase) ListMine(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs, err := loadLineRefs(ctx, uc.productRepo, uc.branchRepo, list...)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o, refs))
	}
	return out, nil
}

// Get pedido del usuario. Pedidos de otros usuarios se reportan como inexistentes.
func (uc *OrderUseCase) Get(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	refs, err := loadLineRefs(ctx, uc.productRepo, uc.branchRepo, o)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, refs), nil
}

// lineRefs nombre e imagen de producto y datos de sucursal de las líneas de uno o más pedidos.
type lineRefs struct {
	products map[string]entity.ProductRef
	branches map[string]entity.BranchRef
}

// loadLineRefs resuelve en dos consultas los productos y sucursales de todas las líneas.
func loadLineRefs(ctx context.Context, productRepo repository.ProductRepository, branchRepo repository.BranchRepository, orders ...*entity.Order) (lineRefs, error) {
	var productIDs, branchIDs []string
	seenP, seenB := map[string]bool{}, map[string]bool{}
	for _, o := range orders {
		for _, it := range o.Items {
			if !seenP[it.ProductID] {
				seenP[it.ProductID] = true
				productIDs = append(productIDs, it.ProductID)
			}
			if !seenB[it.BranchID] {
				seenB[it.BranchID] = true
				branchIDs = append(branchIDs, it.BranchID)
			}
		}
	}
	products, err := productRepo.GetRefs(ctx, productIDs)
	if err != nil {
		return lineRefs{}, err
	}
	branches, err := branchRepo.GetRefs(ctx, branchIDs)
	if err != nil {
		return lineRefs{}, err
	}
	return lineRefs{products: products, branches: branches}, nil
}

func toOrderResponse(o *entity.Order, refs lineRefs) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		item := dto.OrderItemResponse{
			ProductID: it.ProductID,
			BranchID:  it.BranchID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
		}
		if p, ok := refs.products[it.ProductID]; ok {
			item.Product = &dto.ProductRefResponse{ID: p.ID, Name: p.Name, Image: p.Image}
		}
		if b, ok := refs.branches[it.BranchID]; ok {
			item.Branch = &dto.BranchRefResponse{ID: b.ID, Name: b.Name, Location: b.Location}
		}
		items = append(items, item)
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		OrderDate:     o.OrderDate,
	}
}
