package billing

import (
	"context"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
)

// ReceiptPDFGenerator puerto de salida para la representación gráfica del recibo.
// La implementación (maroto) vive en infrastructure/pdf.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *dto.ReceiptResponse) ([]byte, error)
}

// ReceiptReader lo que el caso de uso de PDF necesita del recibo.
type ReceiptReader interface {
	GetReceipt(ctx context.Context, companyID, saleID string) (*dto.ReceiptResponse, error)
}
