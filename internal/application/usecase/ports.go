package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// CartTxRunner ejecuta una mutación del carrito (cabecera + líneas) de forma atómica.
type CartTxRunner interface {
	RunCart(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReviewTxRunner revisión de documento y verificación del usuario en la misma transacción.
type ReviewTxRunner interface {
	RunReview(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		userRepo repository.UserRepository,
	) error) error
}

// FileKind tipo de archivo aceptado por el almacenamiento.
type FileKind string

const (
	FileKindImage FileKind = "image" // cualquier image/*
	FileKindPDF   FileKind = "pdf"   // solo application/pdf
)

// Upload archivo recibido en un multipart.
type Upload struct {
	FileName    string
	ContentType string // declarado por el cliente
	Size        int64
	Body        io.Reader
}

// FileStore almacena archivos subidos. Save valida tipo (declarado y detectado) y tamaño;
// devuelve la ruta relativa con la que se sirve bajo /uploads.
type FileStore interface {
	Save(ctx context.Context, kind FileKind, up Upload) (string, error)
	Remove(ctx context.Context, path string) error
}

// BranchReportRenderer genera el PDF de comparación de sucursales.
type BranchReportRenderer interface {
	RenderComparison(ctx context.Context, cmp *dto.BranchComparisonResponse) ([]byte, error)
}
