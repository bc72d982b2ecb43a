package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto vendible en la caja.
type Product struct {
	ID          string
	CompanyID   string
	SupplierID  string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	TaxRate     decimal.Decimal // IVA: 0, 5, 19
	Barcode     string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
