package usecase_test

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
)

// memFiles FileStore en memoria; no valida tipos (eso se prueba en storage).
type memFiles struct {
	saved   map[string][]byte
	removed []string
	n       int
}

func newMemFiles() *memFiles { return &memFiles{saved: map[string][]byte{}} }

func (f *memFiles) Save(_ context.Context, kind usecase.FileKind, up usecase.Upload) (string, error) {
	data, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	f.n++
	path := fmt.Sprintf("%s/%d", kind, f.n)
	f.saved[path] = data
	return path, nil
}

func (f *memFiles) Remove(_ context.Context, path string) error {
	delete(f.saved, path)
	f.removed = append(f.removed, path)
	return nil
}

type stubReport struct{ got *dto.BranchComparisonResponse }

func (r *stubReport) RenderComparison(_ context.Context, cmp *dto.BranchComparisonResponse) ([]byte, error) {
	r.got = cmp
	return []byte("%PDF-1.4 stub"), nil
}

func pdfUpload(name string) usecase.Upload {
	body := "%PDF-1.4 contenido"
	return usecase.Upload{FileName: name, ContentType: "application/pdf", Size: int64(len(body)), Body: strings.NewReader(body)}
}
