package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
)

// ProductHandler maneja el catálogo de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name           formData  string  true   "Nombre"
// @Param        originalPrice  formData  number  true   "Precio original"
// @Param        description    formData  string  false  "Descripción"
// @Param        branchId       formData  string  true   "Sucursal"
// @Param        stock          formData  int     false  "Stock"
// @Param        image          formData  file    false  "Imagen (image/*, máx. 10 MB)"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("originalPrice")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "originalPrice debe ser numérico"})
	}
	stock := 0
	if s := strings.TrimSpace(c.FormValue("stock")); s != "" {
		if stock, err = strconv.Atoi(s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock debe ser entero"})
		}
	}
	in := dto.CreateProductRequest{
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		OriginalPrice: price,
		Stock:         stock,
	}
	if in.BranchID, err = checkID("branchId", c.FormValue("branchId")); err != nil {
		return err
	}

	image, closeFn, err := formUpload(c, "image")
	if err != nil {
		return err
	}
	defer closeFn()

	out, err := h.uc.Create(c.Context(), in, image)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos activos
// @Tags         products
// @Produce      json
// @Param        search  query  string  false  "Texto contenido en el nombre"
// @Param        branch  query  string  false  "ID de sucursal"
// @Success      200     {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	branchID, err := optionalID("branch", c.Query("branch"))
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), strings.TrimSpace(c.Query("search")), branchID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetDiscount godoc
// @Summary      Aplicar descuento
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.SetDiscountRequest  true  "Porcentaje 0..100"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/discount [put]
func (h *ProductHandler) SetDiscount(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.SetDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetDiscount(c.Context(), id, in.DiscountPercentage)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}
