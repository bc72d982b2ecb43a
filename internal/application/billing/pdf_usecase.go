package billing

import (
	"context"
	"fmt"
)

// PDFUseCase genera el ticket en PDF de una venta a partir del recibo conciliado.
type PDFUseCase struct {
	receipts  ReceiptReader
	generator ReceiptPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(receipts ReceiptReader, generator ReceiptPDFGenerator) *PDFUseCase {
	return &PDFUseCase{receipts: receipts, generator: generator}
}

// DownloadReceiptPDF arma el recibo y lo renderiza.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
//   - domain.ErrForbidden        si la venta no pertenece a la empresa del token.
func (uc *PDFUseCase) DownloadReceiptPDF(ctx context.Context, companyID, saleID string) (pdfBytes []byte, filename string, err error) {
	rec, err := uc.receipts.GetReceipt(ctx, companyID, saleID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, rec)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	ref := rec.Number
	if ref == "" {
		ref = rec.SaleID
	}
	filename = fmt.Sprintf("recibo_%s.pdf", ref)
	return pdfBytes, filename, nil
}
