package entity

import "strings"

// RequestStatus estados del flujo submit → pending → decisión del administrador.
// Lo comparten documentos y solicitudes de producto.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusFulfilled RequestStatus = "fulfilled"
)

// ParseOutcome valida que s sea uno de los resultados permitidos para la decisión.
func ParseOutcome(s string, allowed ...RequestStatus) (RequestStatus, bool) {
	st := RequestStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if st == a {
			return st, true
		}
	}
	return "", false
}
