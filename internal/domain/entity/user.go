package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role rol cerrado del sistema. Todo gate hace switch exhaustivo sobre estos tres valores.
type Role string

// Roles válidos para User.
const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ParseRole convierte el texto recibido (body o token) en un Role válido.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido %q", s)
	}
}

// String implementa fmt.Stringer.
func (r Role) String() string { return string(r) }

// User representa una identidad del sistema: cliente, empleado o administrador.
// AssignedBranchID y WalletAmount solo tienen sentido para empleados y solo los modifica un administrador.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string // bcrypt hash
	Role             Role
	AssignedBranchID *string
	WalletAmount     decimal.Decimal
	IsVerified       bool // pasa a true cuando un admin aprueba su documento
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAssignedTo indica si el usuario está asignado a la sucursal dada.
func (u *User) IsAssignedTo(branchID string) bool {
	return u.AssignedBranchID != nil && *u.AssignedBranchID == branchID
}

// SalaryPayment entrada del historial de salarios (append-only).
type SalaryPayment struct {
	ID     string
	UserID string
	Amount decimal.Decimal
	Note   string
	Date   time.Time
}
