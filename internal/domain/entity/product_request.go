package entity

import (
	"strings"
	"time"
)

// RequestOrigin distingue las dos vías por las que un empleado pide producto.
type RequestOrigin string

const (
	// OriginBranch solicitud rápida hecha desde la ficha de la sucursal.
	OriginBranch RequestOrigin = "branch"
	// OriginEmployee solicitud completa (categoría, urgencia, respuesta del admin).
	OriginEmployee RequestOrigin = "employee"
)

// Outcomes resultados que el administrador puede aplicar según el origen.
func (o RequestOrigin) Outcomes() []RequestStatus {
	switch o {
	case OriginBranch:
		return []RequestStatus{StatusApproved, StatusRejected}
	case OriginEmployee:
		return []RequestStatus{StatusApproved, StatusRejected, StatusFulfilled}
	default:
		return nil
	}
}

// Urgency nivel de urgencia de una solicitud.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ParseUrgency vacío = medium.
func ParseUrgency(s string) (Urgency, bool) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UrgencyMedium, true
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return u, true
	default:
		return "", false
	}
}

// ProductRequest solicitud de producto de un empleado para su sucursal.
type ProductRequest struct {
	ID            string
	Origin        RequestOrigin
	RequestedBy   string
	BranchID      string
	ProductName   string
	Quantity      int
	Category      string
	Description   string
	Urgency       Urgency
	Status        RequestStatus
	AdminResponse string
	ResponseDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
