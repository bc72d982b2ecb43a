package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
)

// ComboHandler combos y cotización.
type ComboHandler struct {
	uc *usecase.ComboUseCase
}

// NewComboHandler construye el handler.
func NewComboHandler(uc *usecase.ComboUseCase) *ComboHandler {
	return &ComboHandler{uc: uc}
}

// Create godoc
// @Summary      Crear combo
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComboRequest  true  "Combo y sus productos"
// @Success      201   {object}  dto.ComboResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/combos [post]
func (h *ComboHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateComboRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/combos
func (h *ComboHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/combos/:id
func (h *ComboHandler) GetByID(c *fiber.Ctx) error {
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

// Quote godoc
// @Summary      Cotizar combo
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Param        id            path    string  true   "ID del combo"
// @Param        X-Session-ID  header  string  false  "Sesión del formulario"
// @Success      200  {object}  dto.ComboQuoteResponse
// @Router       /api/combos/{id}/quote [get]
func (h *ComboHandler) Quote(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Quote(c.UserContext(), companyID, sessionKey(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
