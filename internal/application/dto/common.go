package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}

// DecisionRequest resultado que aplica un administrador a una solicitud o documento.
type DecisionRequest struct {
	Status        string `json:"status"`
	AdminResponse string `json:"adminResponse,omitempty"`
}
