package dto

import "time"

// DocumentResponse documento de verificación.
type DocumentResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	FileName       string     `json:"fileName"`
	FilePath       string     `json:"filePath"`
	FileType       string     `json:"fileType"`
	Status         string     `json:"status"`
	SubmissionDate time.Time  `json:"submissionDate"`
	ReviewDate     *time.Time `json:"reviewDate,omitempty"`
	ReviewedBy     *string    `json:"reviewedBy,omitempty"`
}

// CreateProductRequestInput solicitud completa de producto de un empleado.
type CreateProductRequestInput struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
}

// ProductRequestFilter filtros del listado del administrador.
type ProductRequestFilter struct {
	Status   string `query:"status"`
	BranchID string `query:"branch"`
	Urgency  string `query:"urgency"`
}

// ProductRequestResponse solicitud de producto.
type ProductRequestResponse struct {
	ID            string             `json:"id"`
	RequestedBy   string             `json:"requestedBy"`
	Branch        *BranchRefResponse `json:"branch,omitempty"`
	ProductName   string             `json:"productName"`
	Quantity      int                `json:"quantity"`
	Category      string             `json:"category"`
	Description   string             `json:"description"`
	Urgency       string             `json:"urgency"`
	Status        string             `json:"status"`
	AdminResponse string             `json:"adminResponse,omitempty"`
	ResponseDate  *time.Time         `json:"responseDate,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// UrgencyCounts pendientes por urgencia.
type UrgencyCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ProductRequestStatsResponse agregados del tablero de solicitudes.
type ProductRequestStatsResponse struct {
	Total            int                      `json:"total"`
	Pending          int                      `json:"pending"`
	Approved         int                      `json:"approved"`
	Rejected         int                      `json:"rejected"`
	Fulfilled        int                      `json:"fulfilled"`
	PendingByUrgency UrgencyCounts            `json:"pendingByUrgency"`
	RecentRequests   []ProductRequestResponse `json:"recentRequests"`
}
