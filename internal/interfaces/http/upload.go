package http

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/retailflow-api/internal/application/usecase"
	"github.com/jhoicas/retailflow-api/internal/domain"
)

// formUpload abre el archivo del campo indicado. Campo ausente → (nil, noop, nil).
// El llamador debe invocar closeFn cuando termine de leer.
func formUpload(c *fiber.Ctx, field string) (*usecase.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("%w: multipart inválido", domain.ErrInvalidInput)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("abrir archivo subido: %w", err)
	}
	return &usecase.Upload{
		FileName:    filepath.Base(fh.Filename),
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// requiredUpload como formUpload pero el archivo es obligatorio.
func requiredUpload(c *fiber.Ctx, field string) (*usecase.Upload, func(), error) {
	up, closeFn, err := formUpload(c, field)
	if err != nil {
		return nil, closeFn, err
	}
	if up == nil {
		return nil, closeFn, fmt.Errorf("%w: el campo %q debe contener un archivo", domain.ErrInvalidInput, field)
	}
	return up, closeFn, nil
}
