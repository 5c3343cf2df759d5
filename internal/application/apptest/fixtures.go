package apptest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// AddBranch inserta una sucursal con ventas en cero.
func (s *Store) AddBranch(name string) *entity.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	b := &entity.Branch{ID: uuid.New().String(), Name: name, Location: name + " centro", TotalSales: decimal.Zero, CreatedAt: now, UpdatedAt: now}
	s.Branches[b.ID] = b
	return b
}

// AddUser inserta un usuario del rol indicado (sin password utilizable).
func (s *Store) AddUser(name string, role entity.Role) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	u := &entity.User{ID: uuid.New().String(), Name: name, Email: name + "@retail.test", Role: role, WalletAmount: decimal.Zero, CreatedAt: now, UpdatedAt: now}
	s.Users[u.ID] = u
	return u
}

// AddProduct inserta un producto activo con el precio dado.
func (s *Store) AddProduct(name, branchID string, price decimal.Decimal) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.New().String(), Name: name, BranchID: branchID, OriginalPrice: price,
		DiscountPercentage: decimal.Zero, DiscountPrice: decimal.Zero, Stock: 10, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	s.Products[p.ID] = p
	return p
}

// PutCart guarda el carrito del usuario tal cual (total incluido).
func (s *Store) PutCart(c *entity.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	s.Carts[c.UserID] = cloneCart(c)
}

// TotalSales ventas acumuladas de una sucursal.
func (s *Store) TotalSales(branchID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Branches[branchID].TotalSales
}
