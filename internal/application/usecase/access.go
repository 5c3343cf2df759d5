package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

// EnsureEmployeeBranch exige que user sea un empleado asignado a branchID.
func EnsureEmployeeBranch(user *entity.User, branchID string) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	switch user.Role {
	case entity.RoleEmployee:
		if !user.IsAssignedTo(branchID) {
			return domain.ErrBranchMismatch
		}
		return nil
	case entity.RoleCustomer, entity.RoleAdmin:
		return domain.ErrForbidden
	default:
		return domain.ErrForbidden
	}
}

// decide aplica el resultado del administrador a una solicitud de producto.
func decide(pr *entity.ProductRequest, outcome entity.RequestStatus, response string, now time.Time) {
	pr.Status = outcome
	if r := strings.TrimSpace(response); r != "" {
		pr.AdminResponse = r
	}
	pr.ResponseDate = &now
	pr.UpdatedAt = now
}
