package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Combo agrupa varios productos con un precio propio.
type Combo struct {
	ID        string
	CompanyID string
	Name      string
	Price     decimal.Decimal
	Items     []ComboItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComboItem componente de un combo.
type ComboItem struct {
	ComboID   string
	ProductID string
	Quantity  int64
}
