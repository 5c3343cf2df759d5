package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest entrada para registro público (siempre crea un customer).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest entrada para login. Role es el rol con el que el usuario dice entrar; vacío = customer.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Role           string             `json:"role"`
	AssignedBranch *BranchRefResponse `json:"assignedBranch,omitempty"`
	WalletAmount   decimal.Decimal    `json:"walletAmount"`
	IsVerified     bool               `json:"isVerified"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// AuthResponse token JWT + perfil.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AssignBranchRequest asignación de sucursal a un empleado.
type AssignBranchRequest struct {
	BranchID string `json:"branchId"`
}

// SendSalaryRequest pago de salario. Note vacío = "Salary payment".
type SendSalaryRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// SalaryPaymentResponse entrada del historial de salarios.
type SalaryPaymentResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
	Date   time.Time       `json:"date"`
}

// SalaryInfoResponse saldo e historial (más reciente primero).
type SalaryInfoResponse struct {
	WalletAmount  decimal.Decimal         `json:"walletAmount"`
	SalaryHistory []SalaryPaymentResponse `json:"salaryHistory"`
}

// SendSalaryResponse resultado de un pago de salario.
type SendSalaryResponse struct {
	EmployeeID   string                `json:"employeeId"`
	WalletAmount decimal.Decimal       `json:"walletAmount"`
	Payment      SalaryPaymentResponse `json:"payment"`
}
