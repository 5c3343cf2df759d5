package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/retailflow-api/internal/domain"
)

// pathID lee un parámetro de ruta que debe ser un UUID.
func pathID(c *fiber.Ctx, name string) (string, error) {
	return checkID(name, c.Params(name))
}

// checkID valida que v sea un UUID y lo devuelve en forma canónica.
// Las columnas de ID son uuid en PostgreSQL: un valor mal formado no debe llegar a la consulta.
func checkID(field, v string) (string, error) {
	id, err := uuid.Parse(v)
	if err != nil {
		return "", fmt.Errorf("%w: %s no es un ID válido", domain.ErrInvalidInput, field)
	}
	return id.String(), nil
}

// optionalID como checkID, pero un valor vacío significa "sin filtro".
func optionalID(field, v string) (string, error) {
	if v == "" {
		return "", nil
	}
	return checkID(field, v)
}
