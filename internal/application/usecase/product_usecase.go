package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/pricing"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// ProductUseCase catálogo: alta con imagen, listado, descuentos y borrado lógico.
// Toda mutación pasa por Product.Reprice antes de persistir.
type ProductUseCase struct {
	repo       repository.ProductRepository
	branchRepo repository.BranchRepository
	files      FileStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, branchRepo repository.BranchRepository, files FileStore) *ProductUseCase {
	return &ProductUseCase{repo: repo, branchRepo: branchRepo, files: files}
}

// Create crea un producto activo en la sucursal indicada. image es opcional.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, image *Upload) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.BranchID == "" {
		return nil, fmt.Errorf("%w: name y branchId son requeridos", domain.ErrInvalidInput)
	}
	if in.OriginalPrice.IsNegative() || in.Stock < 0 {
		return nil, fmt.Errorf("%w: precio y stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}

	var imagePath string
	if image != nil {
		if imagePath, err = uc.files.Save(ctx, FileKindImage, *image); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		Name:               name,
		Description:        strings.TrimSpace(in.Description),
		Image:              imagePath,
		OriginalPrice:      in.OriginalPrice.Round(2),
		DiscountPercentage: decimal.Zero,
		BranchID:           branch.ID,
		Stock:              in.Stock,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	product.Reprice()
	if err := uc.repo.Create(ctx, product); err != nil {
		if imagePath != "" {
			_ = uc.files.Remove(ctx, imagePath)
		}
		return nil, err
	}
	out := toProductResponse(product, &entity.BranchRef{ID: branch.ID, Name: branch.Name, Location: branch.Location})
	return &out, nil
}

// List productos activos, filtrados por nombre (subcadena, sin mayúsculas) y sucursal.
func (uc *ProductUseCase) List(ctx context.Context, search, branchID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{Search: search, BranchID: branchID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return uc.withBranches(ctx, list)
}

// GetByID producto activo. Los inactivos se reportan como inexistentes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := uc.withBranches(ctx, []*entity.Product{product})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// SetDiscount fija el porcentaje (0..100) y recalcula el precio con descuento.
func (uc *ProductUseCase) SetDiscount(ctx context.Context, id string, pct *decimal.Decimal) (*dto.ProductResponse, error) {
	if pct == nil || !pricing.ValidPercentage(*pct) {
		return nil, fmt.Errorf("%w: discountPercentage debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	product, err := uc.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.DiscountPercentage = *pct
	product.UpdatedAt = time.Now()
	product.Reprice()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out, err := uc.withBranches(ctx, []*entity.Product{product})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Delete borrado lógico (is_active = false).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.activeProduct(ctx, id)
	if err != nil {
		return err
	}
	product.IsActive = false
	product.UpdatedAt = time.Now()
	product.Reprice()
	return uc.repo.Update(ctx, product)
}

func (uc *ProductUseCase) activeProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// withBranches arma las respuestas resolviendo todas las sucursales en una sola consulta.
func (uc *ProductUseCase) withBranches(ctx context.Context, list []*entity.Product) ([]dto.ProductResponse, error) {
	ids := make([]string, 0, len(list))
	seen := map[string]bool{}
	for _, p := range list {
		if !seen[p.BranchID] {
			seen[p.BranchID] = true
			ids = append(ids, p.BranchID)
		}
	}
	refs, err := uc.branchRepo.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p, refOf(refs, p.BranchID)))
	}
	return out, nil
}
