// Package storage guarda los archivos subidos (imágenes de producto y documentos PDF) en disco.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/retailflow-api/internal/application/usecase"
	"github.com/jhoicas/retailflow-api/internal/domain"
)

// sniffLen bytes leídos para detectar el tipo real (límite de lectura de mimetype).
const sniffLen = 3072

// LocalStore implementa usecase.FileStore sobre un directorio local servido en /uploads.
type LocalStore struct {
	dir      string
	maxBytes int64
}

var _ usecase.FileStore = (*LocalStore)(nil)

// NewLocalStore crea los subdirectorios necesarios bajo dir.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	for _, sub := range []string{subdir(usecase.FileKindImage), subdir(usecase.FileKindPDF)} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("storage: crear %s: %w", sub, err)
		}
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save valida tamaño y tipo (declarado y detectado) y escribe el archivo con nombre aleatorio.
// Devuelve la ruta relativa, p. ej. "documents/<uuid>.pdf".
func (s *LocalStore) Save(_ context.Context, kind usecase.FileKind, up usecase.Upload) (string, error) {
	if up.Body == nil {
		return "", fmt.Errorf("%w: archivo requerido", domain.ErrInvalidInput)
	}
	if up.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrFileTooLarge)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("storage: leer archivo: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}

	detected := mimetype.Detect(head)
	if !accepts(kind, up.ContentType, detected) {
		return "", fmt.Errorf("%w: %w (%s)", domain.ErrInvalidInput, domain.ErrUnsupportedFile, detected.String())
	}

	rel := filepath.ToSlash(filepath.Join(subdir(kind), uuid.New().String()+detected.Extension()))
	full := filepath.Join(s.dir, filepath.FromSlash(rel))
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}

	// Size lo declara el cliente; el límite se vuelve a aplicar sobre lo leído.
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), up.Body), s.maxBytes+1)
	written, copyErr := io.Copy(f, body)
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: escribir archivo: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: cerrar archivo: %w", closeErr)
	case written > s.maxBytes:
		_ = os.Remove(full)
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrFileTooLarge)
	}
	return rel, nil
}

// Remove borra un archivo previamente guardado. Una ruta vacía o inexistente no es error.
func (s *LocalStore) Remove(_ context.Context, rel string) error {
	if rel == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: ruta fuera del directorio de uploads", domain.ErrInvalidInput)
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar archivo: %w", err)
	}
	return nil
}

func subdir(kind usecase.FileKind) string {
	if kind == usecase.FileKindPDF {
		return "documents"
	}
	return "products"
}

// accepts exige que el tipo declarado y el detectado coincidan con el tipo pedido.
func accepts(kind usecase.FileKind, declared string, detected *mimetype.MIME) bool {
	declared = strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	switch kind {
	case usecase.FileKindPDF:
		return declared == "application/pdf" && detected.Is("application/pdf")
	case usecase.FileKindImage:
		return strings.HasPrefix(declared, "image/") && strings.HasPrefix(detected.String(), "image/")
	default:
		return false
	}
}
