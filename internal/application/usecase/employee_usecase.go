package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// EmployeeUseCase administración de empleados y autoservicio de sucursal.
// El salario vive en payroll.PayrollUseCase.
type EmployeeUseCase struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	branches   *BranchUseCase
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(userRepo repository.UserRepository, branchRepo repository.BranchRepository, branches *BranchUseCase) *EmployeeUseCase {
	return &EmployeeUseCase{userRepo: userRepo, branchRepo: branchRepo, branches: branches}
}

// List empleados, más recientes primero, con su sucursal asignada.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.ListByRole(ctx, entity.RoleEmployee)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, u := range list {
		if u.AssignedBranchID != nil {
			ids = append(ids, *u.AssignedBranchID)
		}
	}
	refs, err := uc.branchRepo.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		var ref *entity.BranchRef
		if u.AssignedBranchID != nil {
			ref = refOf(refs, *u.AssignedBranchID)
		}
		out = append(out, toUserResponse(u, ref))
	}
	return out, nil
}

// AssignBranch asigna o reasigna la sucursal de un empleado.
func (uc *EmployeeUseCase) AssignBranch(ctx context.Context, employeeID string, in dto.AssignBranchRequest) (*dto.UserResponse, error) {
	if in.BranchID == "" {
		return nil, fmt.Errorf("%w: branchId es requerido", domain.ErrInvalidInput)
	}
	emp, err := uc.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	if err := uc.userRepo.SetAssignedBranch(ctx, emp.ID, branch.ID); err != nil {
		return nil, err
	}
	emp.AssignedBranchID = &branch.ID
	out := toUserResponse(emp, &entity.BranchRef{ID: branch.ID, Name: branch.Name, Location: branch.Location})
	return &out, nil
}

// MyBranch sucursal asignada al empleado con sus empleados y productos.
func (uc *EmployeeUseCase) MyBranch(ctx context.Context, employeeID string) (*dto.BranchDetailResponse, error) {
	emp, err := uc.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.AssignedBranchID == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotFound, domain.ErrNoBranchAssigned)
	}
	return uc.branches.Get(ctx, *emp.AssignedBranchID)
}

func (uc *EmployeeUseCase) employee(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != entity.RoleEmployee {
		return nil, fmt.Errorf("%w: empleado", domain.ErrUserNotFound)
	}
	return u, nil
}
