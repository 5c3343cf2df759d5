package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
)

// ProductRequestHandler solicitudes completas de producto de empleados.
type ProductRequestHandler struct {
	uc *usecase.ProductRequestUseCase
}

// NewProductRequestHandler construye el handler.
func NewProductRequestHandler(uc *usecase.ProductRequestUseCase) *ProductRequestHandler {
	return &ProductRequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de producto
// @Tags         product-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequestInput  true  "Solicitud"
// @Success      201  {object}  dto.ProductRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-requests [post]
func (h *ProductRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequestInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis solicitudes
// @Tags         product-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductRequestResponse
// @Router       /api/product-requests/my-requests [get]
func (h *ProductRequestHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         product-requests
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "pending | approved | rejected | fulfilled"
// @Param        branch   query  string  false  "ID de sucursal"
// @Param        urgency  query  string  false  "low | medium | high"
// @Success      200  {array}  dto.ProductRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-requests [get]
func (h *ProductRequestHandler) List(c *fiber.Ctx) error {
	var f dto.ProductRequestFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	var err error
	if f.BranchID, err = optionalID("branch", f.BranchID); err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Resolver solicitud
// @Tags         product-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        requestId  path  string               true  "ID de la solicitud"
// @Param        body       body  dto.DecisionRequest  true  "status, adminResponse"
// @Success      200  {object}  dto.ProductRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-requests/{requestId}/status [put]
func (h *ProductRequestHandler) Decide(c *fiber.Ctx) error {
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return err
	}
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Decide(c.Context(), requestID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de solicitudes
// @Tags         product-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductRequestStatsResponse
// @Router       /api/product-requests/stats [get]
func (h *ProductRequestHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
