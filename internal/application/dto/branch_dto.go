package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBranchRequest entrada para crear una sucursal.
type CreateBranchRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// BranchRefResponse vista reducida de una sucursal anidada en otras respuestas.
type BranchRefResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// EmployeeSummary empleado listado dentro de una sucursal.
type EmployeeSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BranchResponse salida de una sucursal con sus empleados.
type BranchResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Location   string            `json:"location"`
	TotalSales decimal.Decimal   `json:"totalSales"`
	Employees  []EmployeeSummary `json:"employees"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// BranchDetailResponse sucursal con empleados y productos activos.
type BranchDetailResponse struct {
	BranchResponse
	Products []ProductResponse `json:"products"`
}

// BranchSummary métricas de una sucursal para la comparación.
type BranchSummary struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	ProductCount  int             `json:"productCount"`
	EmployeeCount int             `json:"employeeCount"`
}

// BranchComparisonResponse comparación lado a lado de dos sucursales.
type BranchComparisonResponse struct {
	Branch1         BranchSummary   `json:"branch1"`
	Branch2         BranchSummary   `json:"branch2"`
	SalesDifference decimal.Decimal `json:"salesDifference"` // branch1 - branch2
}

// BranchProductRequestInput solicitud rápida de producto desde la sucursal.
type BranchProductRequestInput struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// BranchRequestResponse solicitud de sucursal en el listado del administrador.
type BranchRequestResponse struct {
	ID          string    `json:"id"`
	BranchID    string    `json:"branchId"`
	BranchName  string    `json:"branchName"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	RequestedBy string    `json:"requestedBy"`
	Status      string    `json:"status"`
	RequestDate time.Time `json:"requestDate"`
}
