package entity

import "time"

// Document documento de identidad (PDF) enviado por un usuario para verificación.
type Document struct {
	ID             string
	UserID         string
	FileName       string // nombre original
	FilePath       string // ruta en el almacenamiento
	FileType       string
	Status         RequestStatus
	SubmissionDate time.Time
	ReviewDate     *time.Time
	ReviewedBy     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Outstanding un documento pendiente o aprobado bloquea un nuevo envío.
func (d *Document) Outstanding() bool {
	return d.Status == StatusPending || d.Status == StatusApproved
}

// DocumentOutcomes resultados válidos al revisar un documento.
var DocumentOutcomes = []RequestStatus{StatusApproved, StatusRejected}
