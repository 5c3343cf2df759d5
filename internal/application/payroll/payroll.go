// Package payroll acredita salarios a empleados: saldo e historial en una sola transacción.
package payroll

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
	"github.com/jhoicas/retailflow-api/pkg/logger"
)

// DefaultNote nota del historial cuando el administrador no envía una.
const DefaultNote = "Salary payment"

// PayrollTxRunner ejecuta fn en una transacción con el repo de usuarios atado a ella.
type PayrollTxRunner interface {
	RunPayroll(ctx context.Context, fn func(userRepo repository.UserRepository) error) error
}

// PayrollUseCase pago de salarios e información de saldo.
type PayrollUseCase struct {
	txRunner PayrollTxRunner
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewPayrollUseCase construye el caso de uso.
func NewPayrollUseCase(txRunner PayrollTxRunner, userRepo repository.UserRepository, log *logger.Logger) *PayrollUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PayrollUseCase{txRunner: txRunner, userRepo: userRepo, log: log}
}

// SendSalary suma amount al saldo del empleado y agrega la entrada al historial.
func (uc *PayrollUseCase) SendSalary(ctx context.Context, employeeID string, in dto.SendSalaryRequest) (*dto.SendSalaryResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
	}
	note := strings.TrimSpace(in.Note)
	if note == "" {
		note = DefaultNote
	}
	payment := &entity.SalaryPayment{
		ID:     uuid.New().String(),
		UserID: employeeID,
		Amount: in.Amount.Round(2),
		Note:   note,
		Date:   time.Now(),
	}

	var balance decimal.Decimal
	err := uc.txRunner.RunPayroll(ctx, func(userRepo repository.UserRepository) error {
		emp, err := userRepo.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil || emp.Role != entity.RoleEmployee {
			return fmt.Errorf("%w: empleado", domain.ErrUserNotFound)
		}
		if balance, err = userRepo.AddToWallet(ctx, employeeID, payment.Amount); err != nil {
			return err
		}
		return userRepo.AddSalaryPayment(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("employee_id", employeeID).Str("amount", payment.Amount.String()).Msg("salario acreditado")
	return &dto.SendSalaryResponse{
		EmployeeID:   employeeID,
		WalletAmount: balance,
		Payment:      toSalaryPaymentResponse(payment),
	}, nil
}

// SalaryInfo saldo actual e historial del empleado, más reciente primero.
func (uc *PayrollUseCase) SalaryInfo(ctx context.Context, employeeID string) (*dto.SalaryInfoResponse, error) {
	emp, err := uc.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrUserNotFound
	}
	history, err := uc.userRepo.ListSalaryPayments(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := &dto.SalaryInfoResponse{
		WalletAmount:  emp.WalletAmount,
		SalaryHistory: make([]dto.SalaryPaymentResponse, 0, len(history)),
	}
	for _, p := range history {
		out.SalaryHistory = append(out.SalaryHistory, toSalaryPaymentResponse(p))
	}
	return out, nil
}

func toSalaryPaymentResponse(p *entity.SalaryPayment) dto.SalaryPaymentResponse {
	return dto.SalaryPaymentResponse{ID: p.ID, Amount: p.Amount, Note: p.Note, Date: p.Date}
}
