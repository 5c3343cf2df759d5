package entity

import (
	"time"

	"github.com/jhoicas/retailflow-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// Product producto del catálogo de una sucursal. IsActive=false es borrado lógico.
type Product struct {
	ID                 string
	Name               string
	Description        string
	Image              string // nombre del archivo subido, vacío si no tiene
	OriginalPrice      decimal.Decimal
	DiscountPercentage decimal.Decimal // 0..100
	DiscountPrice      decimal.Decimal // derivado; 0 = sin descuento
	BranchID           string
	Stock              int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Reprice redondea DiscountPercentage a dos decimales y recalcula DiscountPrice desde él.
// Todo caso de uso que modifica un producto lo invoca antes de persistir.
func (p *Product) Reprice() {
	p.DiscountPercentage = pricing.RoundPercentage(p.DiscountPercentage)
	p.DiscountPrice = pricing.DiscountPrice(p.OriginalPrice, p.DiscountPercentage)
}

// FinalPrice precio efectivo de venta.
func (p *Product) FinalPrice() decimal.Decimal {
	return pricing.FinalPrice(p.OriginalPrice, p.DiscountPrice)
}

// ProductRef vista reducida de un producto (id, nombre, imagen) para las líneas de pedido.
type ProductRef struct {
	ID    string
	Name  string
	Image string
}
