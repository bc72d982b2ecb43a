package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// UpstreamChecker lo cumple billing.ReceiptUseCase.
type UpstreamChecker interface {
	CheckUpstream(ctx context.Context) error
}

// HealthHandler estado del servicio y del backend de ventas.
type HealthHandler struct {
	service  string
	upstream UpstreamChecker
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string, upstream UpstreamChecker) *HealthHandler {
	return &HealthHandler{service: service, upstream: upstream}
}

// Health GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Upstream godoc
// @Summary      Estado del backend de ventas
// @Description  Un solo intento con timeout acotado; sin reintentos.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/upstream [get]
func (h *HealthHandler) Upstream(c *fiber.Ctx) error {
	if err := h.upstream.CheckUpstream(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "upstream": "sales", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok", "upstream": "sales"})
}
