package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// recentRequests cantidad de solicitudes recientes en las estadísticas.
const recentRequests = 5

// ProductRequestUseCase solicitudes completas de producto (origen employee).
type ProductRequestUseCase struct {
	repo       repository.ProductRequestRepository
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
}

// NewProductRequestUseCase construye el caso de uso.
func NewProductRequestUseCase(repo repository.ProductRequestRepository, userRepo repository.UserRepository, branchRepo repository.BranchRepository) *ProductRequestUseCase {
	return &ProductRequestUseCase{repo: repo, userRepo: userRepo, branchRepo: branchRepo}
}

// Create registra la solicitud para la sucursal asignada del empleado.
func (uc *ProductRequestUseCase) Create(ctx context.Context, employeeID string, in dto.CreateProductRequestInput) (*dto.ProductRequestResponse, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" || in.Quantity < 1 {
		return nil, fmt.Errorf("%w: productName y quantity >= 1 son requeridos", domain.ErrInvalidInput)
	}
	urgency, ok := entity.ParseUrgency(in.Urgency)
	if !ok {
		return nil, fmt.Errorf("%w: urgency debe ser low, medium o high", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.AssignedBranchID == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, domain.ErrNoBranchAssigned)
	}

	now := time.Now()
	pr := &entity.ProductRequest{
		ID:          uuid.New().String(),
		Origin:      entity.OriginEmployee,
		RequestedBy: user.ID,
		BranchID:    *user.AssignedBranchID,
		ProductName: name,
		Quantity:    in.Quantity,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Urgency:     urgency,
		Status:      entity.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return uc.one(ctx, pr)
}

// ListMine solicitudes del empleado, más recientes primero.
func (uc *ProductRequestUseCase) ListMine(ctx context.Context, employeeID string) ([]dto.ProductRequestResponse, error) {
	return uc.list(ctx, repository.ProductRequestFilter{Origin: entity.OriginEmployee, RequestedBy: employeeID})
}

// List listado del administrador con filtros opcionales de estado, sucursal y urgencia.
func (uc *ProductRequestUseCase) List(ctx context.Context, f dto.ProductRequestFilter) ([]dto.ProductRequestResponse, error) {
	filter := repository.ProductRequestFilter{Origin: entity.OriginEmployee, BranchID: f.BranchID}
	if f.Status != "" {
		st, ok := entity.ParseOutcome(f.Status, entity.StatusPending, entity.StatusApproved, entity.StatusRejected, entity.StatusFulfilled)
		if !ok {
			return nil, fmt.Errorf("%w: status desconocido", domain.ErrInvalidInput)
		}
		filter.Status = st
	}
	if f.Urgency != "" {
		u, ok := entity.ParseUrgency(f.Urgency)
		if !ok {
			return nil, fmt.Errorf("%w: urgency desconocida", domain.ErrInvalidInput)
		}
		filter.Urgency = u
	}
	return uc.list(ctx, filter)
}

// Decide aplica approved, rejected o fulfilled con respuesta opcional y sella la fecha de respuesta.
func (uc *ProductRequestUseCase) Decide(ctx context.Context, requestID string, in dto.DecisionRequest) (*dto.ProductRequestResponse, error) {
	outcome, ok := entity.ParseOutcome(in.Status, entity.OriginEmployee.Outcomes()...)
	if !ok {
		return nil, fmt.Errorf("%w: status debe ser approved, rejected o fulfilled", domain.ErrInvalidInput)
	}
	pr, err := uc.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if pr == nil || pr.Origin != entity.OriginEmployee {
		return nil, fmt.Errorf("%w: solicitud", domain.ErrNotFound)
	}
	decide(pr, outcome, in.AdminResponse, time.Now())
	if err := uc.repo.UpdateDecision(ctx, pr); err != nil {
		return nil, err
	}
	return uc.one(ctx, pr)
}

// Stats totales por estado, pendientes por urgencia y las más recientes.
func (uc *ProductRequestUseCase) Stats(ctx context.Context) (*dto.ProductRequestStatsResponse, error) {
	byStatus, err := uc.repo.CountByStatus(ctx, entity.OriginEmployee)
	if err != nil {
		return nil, err
	}
	byUrgency, err := uc.repo.CountPendingByUrgency(ctx, entity.OriginEmployee)
	if err != nil {
		return nil, err
	}
	recent, err := uc.list(ctx, repository.ProductRequestFilter{Origin: entity.OriginEmployee, Limit: recentRequests})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductRequestStatsResponse{
		Pending:   byStatus[entity.StatusPending],
		Approved:  byStatus[entity.StatusApproved],
		Rejected:  byStatus[entity.StatusRejected],
		Fulfilled: byStatus[entity.StatusFulfilled],
		PendingByUrgency: dto.UrgencyCounts{
			High:   byUrgency[entity.UrgencyHigh],
			Medium: byUrgency[entity.UrgencyMedium],
			Low:    byUrgency[entity.UrgencyLow],
		},
		RecentRequests: recent,
	}
	for _, n := range byStatus {
		out.Total += n
	}
	return out, nil
}

func (uc *ProductRequestUseCase) list(ctx context.Context, f repository.ProductRequestFilter) ([]dto.ProductRequestResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	refs, err := uc.branchRepo.GetRefs(ctx, branchIDs(list))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductRequestResponse, 0, len(list))
	for _, pr := range list {
		out = append(out, toProductRequestResponse(pr, refOf(refs, pr.BranchID)))
	}
	return out, nil
}

func (uc *ProductRequestUseCase) one(ctx context.Context, pr *entity.ProductRequest) (*dto.ProductRequestResponse, error) {
	refs, err := uc.branchRepo.GetRefs(ctx, []string{pr.BranchID})
	if err != nil {
		return nil, err
	}
	out := toProductRequestResponse(pr, refOf(refs, pr.BranchID))
	return &out, nil
}
