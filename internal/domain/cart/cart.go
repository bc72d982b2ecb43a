// Package cart reglas de cantidades del carrito de la caja.
// El total mostrado nunca se recalcula aquí: lo entrega quien invoca.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
)

// MinQuantity piso de unidades por línea. Quitar la última unidad es una acción explícita (Remove).
const MinQuantity int64 = 1

// Add agrega qty unidades del producto; si ya existe la línea suma a su cantidad.
// Al fusionar, un descuento en la línea nueva reemplaza al de la existente; sin
// descuento se conserva el que ya tenía.
func Add(c *entity.Cart, line entity.CartLine) error {
	if line.ProductID == "" || line.Quantity < MinQuantity || line.SalePrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if i := indexOf(c, line.ProductID); i >= 0 {
		c.Lines[i].Quantity += line.Quantity
		if line.DiscountType != entity.DiscountNone {
			c.Lines[i].DiscountType = line.DiscountType
			c.Lines[i].DiscountValue = line.DiscountValue
		}
		return nil
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// Increment suma una unidad.
func Increment(c *entity.Cart, productID string) error {
	i := indexOf(c, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.Lines[i].Quantity++
	return nil
}

// Decrement resta una unidad sin bajar de MinQuantity.
func Decrement(c *entity.Cart, productID string) error {
	i := indexOf(c, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if c.Lines[i].Quantity > MinQuantity {
		c.Lines[i].Quantity--
	}
	return nil
}

// SetQuantity fija la cantidad; valores menores al piso quedan en MinQuantity.
func SetQuantity(c *entity.Cart, productID string, qty int64) error {
	i := indexOf(c, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if qty < MinQuantity {
		qty = MinQuantity
	}
	c.Lines[i].Quantity = qty
	return nil
}

// Remove elimina la línea completa.
func Remove(c *entity.Cart, productID string) error {
	i := indexOf(c, productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return nil
}

// Clear vacía el carrito.
func Clear(c *entity.Cart) {
	c.Lines = nil
}

// LineGross precio × cantidad de una línea.
func LineGross(l entity.CartLine) decimal.Decimal {
	return l.SalePrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Units total de unidades en el carrito.
func Units(c *entity.Cart) int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func indexOf(c *entity.Cart, productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
