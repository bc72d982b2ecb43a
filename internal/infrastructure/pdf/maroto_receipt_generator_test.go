package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/pdf"
)

func TestGenerateReceiptPDF(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("Café Central")
	rec := &dto.ReceiptResponse{
		SaleID:            "s-1",
		Number:            "POS-0001",
		Date:              "01/05/2024 10:00",
		Annulled:          true,
		ItemDiscountSum:   decimal.NewFromInt(20),
		HasGlobalDiscount: true,
		Lines: []dto.ReceiptLineResponse{{
			ProductName: "Café", Quantity: 2, DiscountTag: "10%",
			Display: dto.LineDisplay{Gross: "$ 200", Discount: "-$ 20", Net: "$ 180"},
		}},
		Display: dto.ReceiptDisplay{Subtotal: "$ 200", ItemDiscountSum: "$ 20", GlobalOnlyDiscount: "-$ 15", TaxTotal: "$ 0", Total: "$ 165"},
	}

	b, err := g.GenerateReceiptPDF(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	_, err = g.GenerateReceiptPDF(context.Background(), nil)
	assert.Error(t, err)
}
