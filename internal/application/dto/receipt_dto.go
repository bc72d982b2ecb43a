package dto

import "github.com/shopspring/decimal"

// ReceiptResponse recibo de venta listo para mostrar (GET /api/sales/:id/receipt).
// Los montos van en decimal y también formateados según la moneda configurada.
type ReceiptResponse struct {
	SaleID             string                `json:"sale_id"`
	Number             string                `json:"number"`
	Date               string                `json:"date"`
	CustomerName       string                `json:"customer_name,omitempty"`
	PaymentMethod      string                `json:"payment_method,omitempty"`
	Status             string                `json:"status"`
	Annulled           bool                  `json:"annulled"`
	AnnulReason        string                `json:"annul_reason,omitempty"`
	Currency           string                `json:"currency"`
	Lines              []ReceiptLineResponse `json:"lines"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	SubtotalNet        decimal.Decimal       `json:"subtotal_net"`
	ItemDiscountSum    decimal.Decimal       `json:"item_discount_sum"`
	GlobalOnlyDiscount decimal.Decimal       `json:"global_only_discount"`
	HasGlobalDiscount  bool                  `json:"has_global_discount"`
	DiscountAmount     decimal.Decimal       `json:"discount_amount"`
	TaxTotal           decimal.Decimal       `json:"tax_total"`
	Taxes              []ReceiptTaxResponse  `json:"taxes"`
	Total              decimal.Decimal       `json:"total"`
	Display            ReceiptDisplay        `json:"display"`
}

// ReceiptLineResponse línea del recibo.
type ReceiptLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Gross       decimal.Decimal `json:"gross"`
	Discount    decimal.Decimal `json:"discount"`
	Net         decimal.Decimal `json:"net"`
	DiscountTag string          `json:"discount_tag,omitempty"` // "10%" o monto fijo formateado
	Display     LineDisplay     `json:"display"`
}

// ReceiptTaxResponse desglose de IVA.
type ReceiptTaxResponse struct {
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// ReceiptDisplay cadenas formateadas de los totales.
type ReceiptDisplay struct {
	Subtotal           string `json:"subtotal"`
	ItemDiscountSum    string `json:"item_discount_sum"`
	GlobalOnlyDiscount string `json:"global_only_discount,omitempty"`
	TaxTotal           string `json:"tax_total"`
	Total              string `json:"total"`
}

// LineDisplay cadenas formateadas de una línea.
type LineDisplay struct {
	UnitPrice string `json:"unit_price"`
	Gross     string `json:"gross"`
	Discount  string `json:"discount,omitempty"`
	Net       string `json:"net"`
}

// AnnulSaleRequest body para POST /api/sales/:id/annul.
type AnnulSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}
