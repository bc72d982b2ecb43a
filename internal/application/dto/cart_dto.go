package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest body para POST /api/cart/items.
type AddCartItemRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	Quantity      int64           `json:"quantity" validate:"required,min=1"`
	DiscountType  string          `json:"discount_type" validate:"omitempty,oneof=percent amount"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// SetCartQuantityRequest body para PUT /api/cart/items/:product_id.
type SetCartQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartTotalsInput totales calculados por quien invoca (backend de ventas / checkout).
// El carrito solo los formatea; nunca recalcula el total.
type CartTotalsInput struct {
	SubtotalNet          decimal.Decimal `query:"subtotal_net" json:"subtotal_net"`
	TotalIva             decimal.Decimal `query:"total_iva" json:"total_iva"`
	TotalItemDiscount    decimal.Decimal `query:"total_item_discount" json:"total_item_discount"`
	GlobalDiscountAmount decimal.Decimal `query:"global_discount_amount" json:"global_discount_amount"`
	Total                decimal.Decimal `query:"total" json:"total"`
}

// CartResponse carrito con líneas y totales.
type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	Units     int64              `json:"units"`
	Totals    *CartTotalsDisplay `json:"totals,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int64           `json:"quantity"`
	Gross         decimal.Decimal `json:"gross"`
	DiscountType  string          `json:"discount_type,omitempty"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	CanDecrement  bool            `json:"can_decrement"`
	Display       string          `json:"display"`
}

// CartTotalsDisplay totales entregados por quien invoca, con su formato.
type CartTotalsDisplay struct {
	CartTotalsInput
	SubtotalNetDisplay          string `json:"subtotal_net_display"`
	TotalIvaDisplay             string `json:"total_iva_display"`
	TotalItemDiscountDisplay    string `json:"total_item_discount_display"`
	GlobalDiscountAmountDisplay string `json:"global_discount_amount_display,omitempty"`
	TotalDisplay                string `json:"total_display"`
}
