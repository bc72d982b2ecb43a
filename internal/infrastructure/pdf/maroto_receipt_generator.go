// Package pdf genera el ticket de venta en PDF con Maroto v2.
//
// Layout (ancho de rollo térmico, 80 mm):
//
//	┌──────────────────────────────┐
//	│  Nombre del comercio         │
//	│  Recibo N° + fecha + estado  │
//	│  ──────────────────────────  │
//	│  Cant  Producto       Neto   │
//	│        -descuento (10%)      │
//	│  ──────────────────────────  │
//	│  Subtotal / Desc. / IVA      │
//	│  TOTAL                       │
//	│  QR con la referencia        │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/ventas-pos-api/internal/application/billing"
	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
)

var _ billing.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

const (
	ticketWidth  = 80.0
	ticketHeight = 297.0
)

var (
	colorDark = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed  = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// MarotoReceiptGenerator implementa billing.ReceiptPDFGenerator.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador; storeName encabeza el ticket.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateReceiptPDF genera el ticket y devuelve sus bytes. Usa los textos ya formateados del recibo.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, r *dto.ReceiptResponse) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: recibo vacío")
	}
	cfg := config.NewBuilder().
		WithDimensions(ticketWidth, ticketHeight).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Recibo "+reference(r), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRows(r)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorDark, Thickness: 0.3}))
	m.AddRows(itemRows(r.Lines)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorDark, Thickness: 0.3}))
	m.AddRows(totalsRows(r)...)
	m.AddRows(row.New(3))
	m.AddRows(row.New(28).Add(
		col.New(3),
		col.New(6).Add(code.NewQr(reference(r), props.Rect{Percent: 100, Center: true})),
		col.New(3),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRows(r *dto.ReceiptResponse) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New(nonEmpty(g.storeName, "Punto de venta"), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Center,
		}))),
		row.New(4).Add(col.New(12).Add(text.New("Recibo N° "+reference(r), props.Text{
			Size: 8, Align: align.Center,
		}))),
	}
	if r.Date != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New(r.Date, props.Text{
			Size: 7, Align: align.Center, Color: colorGray,
		}))))
	}
	if r.CustomerName != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New("Cliente: "+r.CustomerName, props.Text{Size: 7}))))
	}
	if r.Annulled {
		rows = append(rows, row.New(6).Add(col.New(12).Add(text.New("VENTA ANULADA", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorRed, Top: 1,
		}))))
	}
	return rows
}

// itemRows una fila por línea y, si hay descuento, una fila adicional con el monto.
func itemRows(lines []dto.ReceiptLineResponse) []core.Row {
	out := make([]core.Row, 0, len(lines)*2)
	for _, l := range lines {
		out = append(out, row.New(4).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 7})),
			col.New(6).Add(text.New(l.ProductName, props.Text{Size: 7})),
			col.New(4).Add(text.New(l.Display.Gross, props.Text{Size: 7, Align: align.Right})),
		))
		if l.Display.Discount != "" {
			label := "Descuento"
			if l.DiscountTag != "" {
				label += " (" + l.DiscountTag + ")"
			}
			out = append(out, row.New(4).Add(
				col.New(2),
				col.New(6).Add(text.New(label, props.Text{Size: 6.5, Color: colorGray})),
				col.New(4).Add(text.New(l.Display.Discount, props.Text{Size: 6.5, Align: align.Right, Color: colorGray})),
			))
		}
	}
	return out
}

func totalsRows(r *dto.ReceiptResponse) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		p := props.Text{Size: 7}
		if bold {
			p = props.Text{Size: 9, Style: fontstyle.Bold}
		}
		right := p
		right.Align = align.Right
		return row.New(5).Add(
			col.New(7).Add(text.New(label, p)),
			col.New(5).Add(text.New(value, right)),
		)
	}
	rows := []core.Row{pair("Subtotal", r.Display.Subtotal, false)}
	if r.ItemDiscountSum.IsPositive() {
		rows = append(rows, pair("Descuentos por producto", "-"+r.Display.ItemDiscountSum, false))
	}
	if r.HasGlobalDiscount {
		rows = append(rows, pair("Descuento global", r.Display.GlobalOnlyDiscount, false))
	}
	rows = append(rows, pair("IVA", r.Display.TaxTotal, false))
	rows = append(rows, pair("TOTAL", r.Display.Total, true))
	return rows
}

func reference(r *dto.ReceiptResponse) string {
	return nonEmpty(r.Number, r.SaleID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
