package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-pos-api/internal/application/billing"
	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
)

// ReceiptHandler recibos de venta (JSON y PDF) y anulación.
type ReceiptHandler struct {
	uc  *billing.ReceiptUseCase
	pdf *billing.PDFUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *billing.ReceiptUseCase, pdf *billing.PDFUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, pdf: pdf}
}

// GetReceipt godoc
// @Summary      Recibo de una venta
// @Description  Trae la venta del backend, concilia descuentos por línea y global, y devuelve el recibo formateado.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetReceipt(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AnnulSale godoc
// @Summary      Anular venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.AnnulSaleRequest   true  "Motivo"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/annul [post]
func (h *ReceiptHandler) AnnulSale(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.AnnulSaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AnnulSale(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Ticket PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  file
// @Router       /api/sales/{id}/receipt/pdf [get]
func (h *ReceiptHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	b, filename, err := h.pdf.DownloadReceiptPDF(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(b)
}
