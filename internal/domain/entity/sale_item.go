package entity

import "github.com/shopspring/decimal"

// DiscountType tipo de descuento de una línea.
type DiscountType string

const (
	DiscountNone    DiscountType = ""
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// SaleItem línea de una venta.
// DiscountAmount es el valor persistido por el backend; cuando es > 0 es autoritativo.
type SaleItem struct {
	ID             string
	ProductID      string
	ProductName    string
	Quantity       int64
	UnitPrice      decimal.Decimal
	TaxRate        decimal.Decimal
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
}

// Gross devuelve cantidad × precio unitario.
func (i SaleItem) Gross() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
