package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta en el backend de ventas.
const (
	SaleStatusCompleted = "completed"
	SaleStatusAnnulled  = "annulled"
)

// Sale es la cabecera canónica de una venta, ya normalizada desde la respuesta del backend.
// Solo lectura: toda mutación (anulación, creación) ocurre en el backend.
type Sale struct {
	ID             string
	CompanyID      string
	BranchID       string
	CashRegisterID string
	Number         string
	CustomerName   string
	PaymentMethod  string
	Status         string
	Date           time.Time
	Items          []SaleItem
	DiscountAmount decimal.Decimal // descuento total aplicado (por ítem + global)
	Subtotal       decimal.Decimal
	SubtotalNet    decimal.Decimal
	TaxTotal       decimal.Decimal // IVA
	Taxes          []TaxLine
	Total          decimal.Decimal
	AnnulReason    string
}

// TaxLine desglose de impuestos por tarifa (IVA 0, 5, 19).
type TaxLine struct {
	Rate   decimal.Decimal
	Base   decimal.Decimal
	Amount decimal.Decimal
}

// IsAnnulled indica si la venta fue anulada en el backend.
func (s *Sale) IsAnnulled() bool {
	return s.Status == SaleStatusAnnulled
}
