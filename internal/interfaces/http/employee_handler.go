package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/payroll"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
)

// EmployeeHandler administración de empleados y autoservicio del empleado.
type EmployeeHandler struct {
	uc      *usecase.EmployeeUseCase
	payroll *payroll.PayrollUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, payroll *payroll.PayrollUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, payroll: payroll}
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AssignBranch godoc
// @Summary      Asignar sucursal a un empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        employeeId  path  string                   true  "ID del empleado"
// @Param        body        body  dto.AssignBranchRequest  true  "branchId"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{employeeId}/assign-branch [put]
func (h *EmployeeHandler) AssignBranch(c *fiber.Ctx) error {
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return err
	}
	var in dto.AssignBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.BranchID, err = checkID("branchId", in.BranchID); err != nil {
		return err
	}
	out, err := h.uc.AssignBranch(c.Context(), employeeID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SendSalary godoc
// @Summary      Pagar salario
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        employeeId  path  string                 true  "ID del empleado"
// @Param        body        body  dto.SendSalaryRequest  true  "amount, note"
// @Success      200  {object}  dto.SendSalaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{employeeId}/send-salary [post]
func (h *EmployeeHandler) SendSalary(c *fiber.Ctx) error {
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return err
	}
	var in dto.SendSalaryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.payroll.SendSalary(c.Context(), employeeID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SalaryInfo godoc
// @Summary      Mi billetera e historial de salarios
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalaryInfoResponse
// @Router       /api/employees/salary-info [get]
func (h *EmployeeHandler) SalaryInfo(c *fiber.Ctx) error {
	out, err := h.payroll.SalaryInfo(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// MyBranch godoc
// @Summary      Mi sucursal
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BranchDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/my-branch [get]
func (h *EmployeeHandler) MyBranch(c *fiber.Ctx) error {
	out, err := h.uc.MyBranch(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
