package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
)

// BranchHandler sucursales, comparación y solicitudes rápidas de producto.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "name, location"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar sucursales
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.BranchDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Compare godoc
// @Summary      Comparar dos sucursales
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id1  path  string  true  "Sucursal 1"
// @Param        id2  path  string  true  "Sucursal 2"
// @Success      200  {object}  dto.BranchComparisonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/compare/{id1}/{id2} [get]
func (h *BranchHandler) Compare(c *fiber.Ctx) error {
	id1, id2, err := comparePair(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Compare(c.Context(), id1, id2)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CompareReport godoc
// @Summary      Reporte PDF de la comparación
// @Tags         branches
// @Security     Bearer
// @Produce      application/pdf
// @Param        id1  path  string  true  "Sucursal 1"
// @Param        id2  path  string  true  "Sucursal 2"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/compare/{id1}/{id2}/report [get]
func (h *BranchHandler) CompareReport(c *fiber.Ctx) error {
	id1, id2, err := comparePair(c)
	if err != nil {
		return err
	}
	pdf, err := h.uc.CompareReport(c.Context(), id1, id2)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="comparacion-%s-%s.pdf"`, id1, id2))
	return c.Send(pdf)
}

// SubmitRequest godoc
// @Summary      Solicitud rápida de producto para la sucursal propia
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la sucursal"
// @Param        body  body  dto.BranchProductRequestInput  true  "productName, quantity"
// @Success      201   {object}  dto.ProductRequestResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/product-request [post]
func (h *BranchHandler) SubmitRequest(c *fiber.Ctx) error {
	branchID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.BranchProductRequestInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SubmitRequest(c.Context(), GetUserID(c), branchID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRequests godoc
// @Summary      Todas las solicitudes rápidas de sucursal
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchRequestResponse
// @Router       /api/branches/requests/all [get]
func (h *BranchHandler) ListRequests(c *fiber.Ctx) error {
	out, err := h.uc.ListRequests(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DecideRequest godoc
// @Summary      Aprobar o rechazar una solicitud rápida
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        branchId   path  string               true  "ID de la sucursal"
// @Param        requestId  path  string               true  "ID de la solicitud"
// @Param        body       body  dto.DecisionRequest  true  "approved | rejected"
// @Success      200  {object}  dto.ProductRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/requests/{branchId}/{requestId} [put]
func (h *BranchHandler) DecideRequest(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	branchID, err := pathID(c, "branchId")
	if err != nil {
		return err
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return err
	}
	out, err := h.uc.DecideRequest(c.Context(), branchID, requestID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func comparePair(c *fiber.Ctx) (string, string, error) {
	id1, err := pathID(c, "id1")
	if err != nil {
		return "", "", err
	}
	id2, err := pathID(c, "id2")
	if err != nil {
		return "", "", err
	}
	return id1, id2, nil
}
