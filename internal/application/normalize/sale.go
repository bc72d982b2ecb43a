// Package normalize convierte las respuestas del backend de ventas en la venta canónica
// (entity.Sale) antes de cualquier cálculo. Los campos numéricos mal formados se
// convierten a cero: un recibo degradado es preferible a un error.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/pkg/money"
)

// Shape formatos de respuesta conocidos.
type Shape int

const (
	ShapeUnknown  Shape = iota
	ShapeBare           // {id, items, ...}
	ShapeData           // {"data": {id, items, ...}}
	ShapeSale           // {"sale": {id, items, ...}}
	ShapeDataSale       // {"data": {"sale": {...}}}
)

func (s Shape) String() string {
	switch s {
	case ShapeBare:
		return "bare"
	case ShapeData:
		return "data"
	case ShapeSale:
		return "sale"
	case ShapeDataSale:
		return "data.sale"
	default:
		return "unknown"
	}
}

type object = map[string]interface{}

// Sale decodifica raw y devuelve la venta canónica junto con el formato detectado.
func Sale(raw []byte) (*entity.Sale, Shape, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, ShapeUnknown, fmt.Errorf("%w: %v", domain.ErrUnknownSaleShape, err)
	}
	obj, ok := root.(object)
	if !ok {
		return nil, ShapeUnknown, domain.ErrUnknownSaleShape
	}
	shape, body := Detect(obj)
	if shape == ShapeUnknown {
		return nil, shape, domain.ErrUnknownSaleShape
	}
	return toSale(body), shape, nil
}

// Detect identifica el formato por las llaves presentes. Un objeto es una venta si
// tiene "items" o "id"; los sobres se reconocen por "data" y "sale".
func Detect(obj object) (Shape, object) {
	if isSale(obj) {
		return ShapeBare, obj
	}
	if data, ok := obj["data"].(object); ok {
		if isSale(data) {
			return ShapeData, data
		}
		if sale, ok := data["sale"].(object); ok && isSale(sale) {
			return ShapeDataSale, sale
		}
	}
	if sale, ok := obj["sale"].(object); ok && isSale(sale) {
		return ShapeSale, sale
	}
	return ShapeUnknown, nil
}

func isSale(obj object) bool {
	if _, ok := obj["items"].([]interface{}); ok {
		return true
	}
	_, hasID := obj["id"]
	_, hasData := obj["data"]
	_, hasSale := obj["sale"]
	return hasID && !hasData && !hasSale
}

func toSale(m object) *entity.Sale {
	s := &entity.Sale{
		ID:             str(m, "id", "sale_id"),
		CompanyID:      str(m, "company_id", "tenant_id"),
		BranchID:       str(m, "branch_id", "sucursal_id"),
		CashRegisterID: str(m, "cash_register_id", "register_id"),
		Number:         str(m, "number", "sale_number", "receipt_number"),
		CustomerName:   str(m, "customer_name"),
		PaymentMethod:  str(m, "payment_method"),
		Status:         status(str(m, "status", "estado")),
		Date:           cast.ToTime(first(m, "created_at", "date", "fecha")),
		DiscountAmount: num(m, "discount_amount", "total_discount"),
		Subtotal:       num(m, "subtotal"),
		SubtotalNet:    num(m, "subtotal_net", "net_subtotal"),
		TaxTotal:       num(m, "total_iva", "tax_total", "iva"),
		Total:          num(m, "total", "total_amount"),
		AnnulReason:    str(m, "annul_reason", "cancellation_reason"),
	}
	if s.CustomerName == "" {
		if c, ok := m["customer"].(object); ok {
			s.CustomerName = str(c, "name", "full_name")
		}
	}
	if items, ok := m["items"].([]interface{}); ok {
		s.Items = make([]entity.SaleItem, 0, len(items))
		for _, raw := range items {
			if it, ok := raw.(object); ok {
				s.Items = append(s.Items, toItem(it))
			}
		}
	}
	if taxes, ok := m["taxes"].([]interface{}); ok {
		for _, raw := range taxes {
			if t, ok := raw.(object); ok {
				s.Taxes = append(s.Taxes, entity.TaxLine{
					Rate:   num(t, "rate"),
					Base:   num(t, "base"),
					Amount: num(t, "amount"),
				})
			}
		}
	}
	return s
}

func toItem(m object) entity.SaleItem {
	it := entity.SaleItem{
		ID:             str(m, "id"),
		ProductID:      str(m, "product_id"),
		ProductName:    str(m, "product_name", "name"),
		Quantity:       quantity(m, "quantity", "qty", "cantidad"),
		UnitPrice:      num(m, "unit_price", "price", "sale_price"),
		TaxRate:        num(m, "tax_rate", "iva_rate"),
		DiscountType:   DiscountType(str(m, "discount_type")),
		DiscountValue:  num(m, "discount_value"),
		DiscountAmount: num(m, "discount_amount"),
	}
	if p, ok := m["product"].(object); ok {
		if it.ProductName == "" {
			it.ProductName = str(p, "name")
		}
		if it.ProductID == "" {
			it.ProductID = str(p, "id")
		}
	}
	return it
}

// DiscountType mapea los alias observados al tipo canónico; lo desconocido queda sin descuento.
func DiscountType(s string) entity.DiscountType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percent", "percentage", "%", "porcentaje":
		return entity.DiscountPercent
	case "amount", "fixed", "monto", "valor":
		return entity.DiscountAmount
	default:
		return entity.DiscountNone
	}
}

func status(s string) string {
	switch strings.ToLower(s) {
	case "annulled", "anulada", "cancelled", "canceled", "voided":
		return entity.SaleStatusAnnulled
	default:
		return entity.SaleStatusCompleted
	}
}

// maxNumericLen largo máximo de un número en texto; más allá no es un monto.
const maxNumericLen = 64

var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// Decimal convierte cualquier valor JSON a decimal. Números y cadenas numéricas se
// aceptan; todo lo demás es cero, incluidos los valores fuera de rango (money.Plausible).
func Decimal(v interface{}) decimal.Decimal {
	switch x := v.(type) {
	case nil, bool:
		return decimal.Zero
	case json.Number:
		return parseDecimal(x.String())
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero
	}
	return parseDecimal(s)
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxNumericLen {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !money.Plausible(d) {
		return decimal.Zero
	}
	return d
}

// quantity unidades en [0, MaxInt32]; fuera de ese rango es cero.
func quantity(m object, keys ...string) int64 {
	q := num(m, keys...)
	if q.IsNegative() || q.GreaterThan(maxQuantity) {
		return 0
	}
	return q.IntPart()
}

func first(m object, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func num(m object, keys ...string) decimal.Decimal {
	return Decimal(first(m, keys...))
}

func str(m object, keys ...string) string {
	v := first(m, keys...)
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return strings.TrimSpace(cast.ToString(v))
}
