// Package receipt contiene la conciliación de descuentos de un recibo de venta:
// descuento resuelto por línea y separación del descuento global de la venta.
package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// DiscountSplit resultado de separar el descuento total de la venta.
type DiscountSplit struct {
	ItemDiscountSum    decimal.Decimal
	GlobalOnlyDiscount decimal.Decimal
	HasGlobalDiscount  bool
}

// ResolveItemDiscount calcula el descuento monetario de una línea.
// Si el backend persistió discount_amount > 0 se usa ese valor; si no, se recalcula
// desde tipo/valor y se limita a [0, cantidad × precio].
func ResolveItemDiscount(item entity.SaleItem) decimal.Decimal {
	if item.DiscountAmount.GreaterThan(decimal.Zero) {
		return RoundCents(item.DiscountAmount)
	}
	if item.DiscountType == entity.DiscountNone || !item.DiscountValue.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	base := item.Gross()
	raw := item.DiscountValue
	if item.DiscountType == entity.DiscountPercent {
		raw = base.Mul(item.DiscountValue).Div(hundred)
	}
	return RoundCents(clamp(raw, base))
}

// SplitDiscount separa la porción global (de carrito) del descuento total registrado
// en la cabecera. El total se redondea a unidades enteras como en los totales del recibo.
// El resultado es una aproximación: si el redondeo del backend difiere del recálculo
// por línea, la porción global puede quedar levemente sobre o subestimada.
func SplitDiscount(items []entity.SaleItem, totalDiscount decimal.Decimal) DiscountSplit {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(ResolveItemDiscount(it))
	}
	applied := totalDiscount.Round(0)
	global := decimal.Max(decimal.Zero, applied.Sub(sum))
	return DiscountSplit{
		ItemDiscountSum:    sum,
		GlobalOnlyDiscount: global,
		HasGlobalDiscount:  global.GreaterThan(decimal.Zero),
	}
}

// RoundCents redondea a 2 decimales, mitad hacia arriba para montos positivos.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// clamp = max(0, min(raw, base))
func clamp(raw, base decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(raw, base))
}
