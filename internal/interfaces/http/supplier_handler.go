package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
)

// SupplierHandler proveedores de la empresa.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateSupplierRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(companyID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/suppliers/:id
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateSupplierRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckName godoc
// @Summary      Disponibilidad de nombre de proveedor
// @Description  Pensado para validar mientras se escribe; si llega una consulta más nueva en la misma sesión la anterior vuelve con stale=true.
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        name          query   string  true   "Nombre"
// @Param        X-Session-ID  header  string  false  "Sesión del formulario"
// @Success      200  {object}  dto.SupplierNameCheckResponse
// @Router       /api/suppliers/name-check [get]
func (h *SupplierHandler) CheckName(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.CheckName(c.UserContext(), companyID, sessionKey(c), c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LastNameCheck godoc
// @Summary      Última verificación de nombre aplicada en la sesión
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        X-Session-ID  header  string  false  "Sesión del formulario"
// @Success      200  {object}  dto.SupplierNameCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/name-check/last [get]
func (h *SupplierHandler) LastNameCheck(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, ok := h.uc.LastNameCheck(companyID, sessionKey(c))
	if !ok {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(out)
}
