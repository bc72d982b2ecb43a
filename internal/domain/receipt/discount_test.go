package receipt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/receipt"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ResolveItemDiscount
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveItemDiscount_Porcentaje(t *testing.T) {
	item := entity.SaleItem{
		Quantity: 2, UnitPrice: dec("100"),
		DiscountType: entity.DiscountPercent, DiscountValue: dec("10"),
	}
	assert.True(t, dec("20.00").Equal(receipt.ResolveItemDiscount(item)))
}

func TestResolveItemDiscount_MontoFijoLimitadoAlBruto(t *testing.T) {
	item := entity.SaleItem{
		Quantity: 1, UnitPrice: dec("50"),
		DiscountType: entity.DiscountAmount, DiscountValue: dec("1000"),
	}
	assert.True(t, dec("50.00").Equal(receipt.ResolveItemDiscount(item)),
		"el descuento no puede superar cantidad × precio")
}

func TestResolveItemDiscount_PersistidoEsAutoritativo(t *testing.T) {
	item := entity.SaleItem{
		Quantity: 3, UnitPrice: dec("10"),
		DiscountType: entity.DiscountPercent, DiscountValue: dec("50"),
		DiscountAmount: dec("4.005"),
	}
	assert.Equal(t, "4.01", receipt.ResolveItemDiscount(item).StringFixed(2))
}

func TestResolveItemDiscount_SinDescriptor(t *testing.T) {
	item := entity.SaleItem{Quantity: 5, UnitPrice: dec("12.5")}
	assert.True(t, receipt.ResolveItemDiscount(item).IsZero())

	item.DiscountType = entity.DiscountPercent
	assert.True(t, receipt.ResolveItemDiscount(item).IsZero(), "valor 0 no descuenta")
}

func TestResolveItemDiscount_RedondeoMitadArriba(t *testing.T) {
	// 3 × 0.35 × 5% = 0.0525 → 0.05 ; 1 × 1.10 × 5% = 0.055 → 0.06
	a := entity.SaleItem{Quantity: 3, UnitPrice: dec("0.35"), DiscountType: entity.DiscountPercent, DiscountValue: dec("5")}
	b := entity.SaleItem{Quantity: 1, UnitPrice: dec("1.10"), DiscountType: entity.DiscountPercent, DiscountValue: dec("5")}
	assert.Equal(t, "0.05", receipt.ResolveItemDiscount(a).StringFixed(2))
	assert.Equal(t, "0.06", receipt.ResolveItemDiscount(b).StringFixed(2))
}

func TestResolveItemDiscount_Limites(t *testing.T) {
	for q := int64(0); q <= 4; q++ {
		for v := 0; v <= 100; v += 7 {
			item := entity.SaleItem{
				Quantity: q, UnitPrice: dec("19.99"),
				DiscountType: entity.DiscountPercent, DiscountValue: decimal.NewFromInt(int64(v)),
			}
			got := receipt.ResolveItemDiscount(item)
			assert.False(t, got.IsNegative(), "q=%d v=%d", q, v)
			assert.True(t, got.LessThanOrEqual(item.Gross()), "q=%d v=%d", q, v)
		}
	}
	neg := entity.SaleItem{Quantity: 1, UnitPrice: dec("-5"), DiscountType: entity.DiscountAmount, DiscountValue: dec("3")}
	assert.True(t, receipt.ResolveItemDiscount(neg).IsZero(), "nunca negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// SplitDiscount
// ──────────────────────────────────────────────────────────────────────────────

func itemsSumming(total string) []entity.SaleItem {
	return []entity.SaleItem{{Quantity: 1, UnitPrice: dec("1000"), DiscountAmount: dec(total)}}
}

func TestSplitDiscount_ConDescuentoGlobal(t *testing.T) {
	split := receipt.SplitDiscount(itemsSumming("30"), dec("50"))
	assert.True(t, dec("30").Equal(split.ItemDiscountSum))
	assert.True(t, dec("20").Equal(split.GlobalOnlyDiscount))
	assert.True(t, split.HasGlobalDiscount)
}

func TestSplitDiscount_NuncaNegativo(t *testing.T) {
	split := receipt.SplitDiscount(itemsSumming("60"), dec("50"))
	assert.True(t, split.GlobalOnlyDiscount.IsZero())
	assert.False(t, split.HasGlobalDiscount)
}

func TestSplitDiscount_RedondeaTotalAEntero(t *testing.T) {
	items := []entity.SaleItem{
		{Quantity: 2, UnitPrice: dec("100"), DiscountType: entity.DiscountPercent, DiscountValue: dec("10")},
		{Quantity: 1, UnitPrice: dec("40"), DiscountType: entity.DiscountAmount, DiscountValue: dec("5")},
	}
	split := receipt.SplitDiscount(items, dec("34.5"))
	assert.True(t, dec("25").Equal(split.ItemDiscountSum))
	assert.True(t, dec("10").Equal(split.GlobalOnlyDiscount), "34.5 → 35; 35 − 25 = 10")
}

func TestSplitDiscount_SinItems(t *testing.T) {
	split := receipt.SplitDiscount(nil, decimal.Zero)
	assert.True(t, split.ItemDiscountSum.IsZero())
	assert.False(t, split.HasGlobalDiscount)
}
