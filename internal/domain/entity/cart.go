package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine producto dentro del carrito de la caja.
type CartLine struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int64           `json:"quantity"`
	DiscountType  DiscountType    `json:"discount_type,omitempty"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// Cart carrito de un usuario en una empresa. Se serializa tal cual en el store.
type Cart struct {
	CompanyID string     `json:"company_id"`
	UserID    string     `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}
