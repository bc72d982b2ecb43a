package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
)

// CartHandler carrito del usuario autenticado.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get GET /api/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), companyID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary GET /api/cart/summary?subtotal_net=&total_iva=&total_item_discount=&global_discount_amount=&total=
// Formatea los totales recibidos sin recalcularlos.
func (h *CartHandler) Summary(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var totals dto.CartTotalsInput
	if err := c.QueryParser(&totals); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "totales inválidos"})
	}
	out, err := h.uc.Summary(c.UserContext(), companyID, userID, totals)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem POST /api/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.AddCartItemRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddItem(c.UserContext(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Increment POST /api/cart/items/:product_id/increment
func (h *CartHandler) Increment(c *fiber.Ctx) error {
	return h.lineAction(c, h.uc.Increment)
}

// Decrement POST /api/cart/items/:product_id/decrement
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	return h.lineAction(c, h.uc.Decrement)
}

// Remove DELETE /api/cart/items/:product_id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	return h.lineAction(c, h.uc.RemoveItem)
}

// SetQuantity PUT /api/cart/items/:product_id
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.SetCartQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetQuantity(c.UserContext(), companyID, userID, c.Params("product_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Clear(c.UserContext(), companyID, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type lineFn func(ctx context.Context, companyID, userID, productID string) (*dto.CartResponse, error)

func (h *CartHandler) lineAction(c *fiber.Ctx, fn lineFn) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := fn(c.UserContext(), companyID, userID, c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
