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
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// BranchUseCase sucursales: alta, consulta, comparación y solicitudes rápidas de producto.
type BranchUseCase struct {
	repo        repository.BranchRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	requestRepo repository.ProductRequestRepository
	report      BranchReportRenderer
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(
	repo repository.BranchRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	requestRepo repository.ProductRequestRepository,
	report BranchReportRenderer,
) *BranchUseCase {
	return &BranchUseCase{repo: repo, userRepo: userRepo, productRepo: productRepo, requestRepo: requestRepo, report: report}
}

// Create crea una sucursal. El nombre se normaliza y debe ser único (ErrDuplicate).
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	name := entity.NormalizeName(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || location == "" {
		return nil, fmt.Errorf("%w: name y location son requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:         uuid.New().String(),
		Name:       name,
		Location:   location,
		TotalSales: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return &dto.BranchResponse{
		ID: branch.ID, Name: branch.Name, Location: branch.Location, TotalSales: branch.TotalSales,
		Employees: []dto.EmployeeSummary{}, CreatedAt: branch.CreatedAt,
	}, nil
}

// List sucursales con sus empleados, más recientes primero.
func (uc *BranchUseCase) List(ctx context.Context) ([]dto.BranchResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		r, err := uc.toResponse(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// Get sucursal con empleados y productos activos.
func (uc *BranchUseCase) Get(ctx context.Context, id string) (*dto.BranchDetailResponse, error) {
	branch, err := uc.mustBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	base, err := uc.toResponse(ctx, branch)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{BranchID: id, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	ref := &entity.BranchRef{ID: branch.ID, Name: branch.Name, Location: branch.Location}
	out := &dto.BranchDetailResponse{BranchResponse: *base, Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p, ref))
	}
	return out, nil
}

// Compare métricas lado a lado de dos sucursales.
func (uc *BranchUseCase) Compare(ctx context.Context, id1, id2 string) (*dto.BranchComparisonResponse, error) {
	s1, err := uc.summary(ctx, id1)
	if err != nil {
		return nil, err
	}
	s2, err := uc.summary(ctx, id2)
	if err != nil {
		return nil, err
	}
	return &dto.BranchComparisonResponse{
		Branch1:         *s1,
		Branch2:         *s2,
		SalesDifference: s1.TotalSales.Sub(s2.TotalSales),
	}, nil
}

// CompareReport la misma comparación como PDF.
func (uc *BranchUseCase) CompareReport(ctx context.Context, id1, id2 string) ([]byte, error) {
	cmp, err := uc.Compare(ctx, id1, id2)
	if err != nil {
		return nil, err
	}
	return uc.report.RenderComparison(ctx, cmp)
}

// SubmitRequest solicitud rápida de producto de un empleado para su propia sucursal.
func (uc *BranchUseCase) SubmitRequest(ctx context.Context, employeeID, branchID string, in dto.BranchProductRequestInput) (*dto.ProductRequestResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := EnsureEmployeeBranch(user, branchID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ProductName)
	if name == "" || in.Quantity < 1 {
		return nil, fmt.Errorf("%w: productName y quantity >= 1 son requeridos", domain.ErrInvalidInput)
	}
	branch, err := uc.mustBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	pr := &entity.ProductRequest{
		ID:          uuid.New().String(),
		Origin:      entity.OriginBranch,
		RequestedBy: employeeID,
		BranchID:    branch.ID,
		ProductName: name,
		Quantity:    in.Quantity,
		Urgency:     entity.UrgencyMedium,
		Status:      entity.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.requestRepo.Create(ctx, pr); err != nil {
		return nil, err
	}
	out := toProductRequestResponse(pr, &entity.BranchRef{ID: branch.ID, Name: branch.Name, Location: branch.Location})
	return &out, nil
}

// ListRequests todas las solicitudes de sucursal, más recientes primero, con el nombre de la sucursal.
func (uc *BranchUseCase) ListRequests(ctx context.Context) ([]dto.BranchRequestResponse, error) {
	list, err := uc.requestRepo.List(ctx, repository.ProductRequestFilter{Origin: entity.OriginBranch})
	if err != nil {
		return nil, err
	}
	refs, err := uc.repo.GetRefs(ctx, branchIDs(list))
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchRequestResponse, 0, len(list))
	for _, pr := range list {
		out = append(out, dto.BranchRequestResponse{
			ID:          pr.ID,
			BranchID:    pr.BranchID,
			BranchName:  refs[pr.BranchID].Name,
			ProductName: pr.ProductName,
			Quantity:    pr.Quantity,
			RequestedBy: pr.RequestedBy,
			Status:      string(pr.Status),
			RequestDate: pr.CreatedAt,
		})
	}
	return out, nil
}

// DecideRequest aprueba o rechaza una solicitud de la sucursal indicada.
func (uc *BranchUseCase) DecideRequest(ctx context.Context, branchID, requestID string, in dto.DecisionRequest) (*dto.ProductRequestResponse, error) {
	outcome, ok := entity.ParseOutcome(in.Status, entity.OriginBranch.Outcomes()...)
	if !ok {
		return nil, fmt.Errorf("%w: status debe ser approved o rejected", domain.ErrInvalidInput)
	}
	branch, err := uc.mustBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	pr, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if pr == nil || pr.Origin != entity.OriginBranch || pr.BranchID != branch.ID {
		return nil, fmt.Errorf("%w: solicitud", domain.ErrNotFound)
	}
	decide(pr, outcome, in.AdminResponse, time.Now())
	if err := uc.requestRepo.UpdateDecision(ctx, pr); err != nil {
		return nil, err
	}
	out := toProductRequestResponse(pr, &entity.BranchRef{ID: branch.ID, Name: branch.Name, Location: branch.Location})
	return &out, nil
}

func (uc *BranchUseCase) mustBranch(ctx context.Context, id string) (*entity.Branch, error) {
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	return branch, nil
}

func (uc *BranchUseCase) toResponse(ctx context.Context, b *entity.Branch) (*dto.BranchResponse, error) {
	employees, err := uc.userRepo.ListByBranch(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &dto.BranchResponse{
		ID:         b.ID,
		Name:       b.Name,
		Location:   b.Location,
		TotalSales: b.TotalSales,
		Employees:  toEmployeeSummaries(employees),
		CreatedAt:  b.CreatedAt,
	}, nil
}

func (uc *BranchUseCase) summary(ctx context.Context, id string) (*dto.BranchSummary, error) {
	branch, err := uc.mustBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := uc.productRepo.CountActiveByBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	employees, err := uc.userRepo.ListByBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BranchSummary{
		ID:            branch.ID,
		Name:          branch.Name,
		Location:      branch.Location,
		TotalSales:    branch.TotalSales,
		ProductCount:  count,
		EmployeeCount: len(employees),
	}, nil
}

func branchIDs(list []*entity.ProductRequest) []string {
	seen := map[string]bool{}
	ids := make([]string, 0, len(list))
	for _, pr := range list {
		if !seen[pr.BranchID] {
			seen[pr.BranchID] = true
			ids = append(ids, pr.BranchID)
		}
	}
	return ids
}
