package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
)

// BranchHandler sucursales, cajas y contexto de trabajo del usuario.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// List GET /api/branches
func (h *BranchHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Select godoc
// @Summary      Seleccionar sucursal y caja
// @Tags         session
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectBranchRequest  true  "Sucursal y caja"
// @Success      200   {object}  dto.BranchContextResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/branch [put]
func (h *BranchHandler) Select(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.SelectBranchRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.SelectBranch(c.UserContext(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Current GET /api/session/branch
func (h *BranchHandler) Current(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.CurrentContext(c.UserContext(), companyID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear DELETE /api/session/branch
func (h *BranchHandler) Clear(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.ClearContext(c.UserContext(), companyID, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterStatus GET /api/cash-registers/:id/status
func (h *BranchHandler) RegisterStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.RegisterStatus(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
