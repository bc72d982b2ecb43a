package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/normalize"
	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/cart"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-api/pkg/money"
)

// CartUseCase carrito de la caja por (empresa, usuario).
type CartUseCase struct {
	store    ports.CartStore
	products repository.ProductRepository
	format   *money.Formatter
	now      func() time.Time
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(store ports.CartStore, products repository.ProductRepository, format *money.Formatter) *CartUseCase {
	return &CartUseCase{store: store, products: products, format: format, now: time.Now}
}

// Get devuelve el carrito (vacío si no existe).
func (uc *CartUseCase) Get(ctx context.Context, companyID, userID string) (*dto.CartResponse, error) {
	c, err := uc.load(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	return uc.toCartResponse(c, nil), nil
}

// AddItem agrega un producto del catálogo con su precio de venta vigente.
// Si el producto ya está en el carrito suma la cantidad; un descuento enviado
// reemplaza el de la línea y uno ausente lo deja como estaba.
func (uc *CartUseCase) AddItem(ctx context.Context, companyID, userID string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if in.DiscountValue.IsNegative() || !money.Plausible(in.DiscountValue) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !product.Active {
		return nil, domain.ErrInvalidInput
	}
	line := entity.CartLine{
		ProductID:     product.ID,
		Name:          product.Name,
		SalePrice:     product.Price,
		Quantity:      in.Quantity,
		DiscountType:  normalize.DiscountType(in.DiscountType),
		DiscountValue: in.DiscountValue,
	}
	return uc.mutate(ctx, companyID, userID, func(c *entity.Cart) error {
		return cart.Add(c, line)
	})
}

// Increment suma una unidad a la línea.
func (uc *CartUseCase) Increment(ctx context.Context, companyID, userID, productID string) (*dto.CartResponse, error) {
	return uc.mutate(ctx, companyID, userID, func(c *entity.Cart) error {
		return cart.Increment(c, productID)
	})
}

// Decrement resta una unidad; una línea con 1 unidad queda igual.
func (uc *CartUseCase) Decrement(ctx context.Context, companyID, userID, productID string) (*dto.CartResponse, error) {
	return uc.mutate(ctx, companyID, userID, func(c *entity.Cart) error {
		return cart.Decrement(c, productID)
	})
}

// SetQuantity fija la cantidad de la línea (mínimo 1).
func (uc *CartUseCase) SetQuantity(ctx context.Context, companyID, userID, productID string, in dto.SetCartQuantityRequest) (*dto.CartResponse, error) {
	return uc.mutate(ctx, companyID, userID, func(c *entity.Cart) error {
		return cart.SetQuantity(c, productID, in.Quantity)
	})
}

// RemoveItem quita la línea completa.
func (uc *CartUseCase) RemoveItem(ctx context.Context, companyID, userID, productID string) (*dto.CartResponse, error) {
	return uc.mutate(ctx, companyID, userID, func(c *entity.Cart) error {
		return cart.Remove(c, productID)
	})
}

// Clear elimina el carrito.
func (uc *CartUseCase) Clear(ctx context.Context, companyID, userID string) error {
	return uc.store.Delete(ctx, companyID, userID)
}

// Summary devuelve el carrito con los totales entregados por quien invoca, formateados.
// El total no se recalcula.
func (uc *CartUseCase) Summary(ctx context.Context, companyID, userID string, totals dto.CartTotalsInput) (*dto.CartResponse, error) {
	for _, v := range []decimal.Decimal{totals.SubtotalNet, totals.TotalIva, totals.TotalItemDiscount, totals.GlobalDiscountAmount, totals.Total} {
		if !money.Plausible(v) {
			return nil, domain.ErrInvalidInput
		}
	}
	c, err := uc.load(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	f := uc.format
	t := &dto.CartTotalsDisplay{
		CartTotalsInput:          totals,
		SubtotalNetDisplay:       f.Currency(totals.SubtotalNet),
		TotalIvaDisplay:          f.Currency(totals.TotalIva),
		TotalItemDiscountDisplay: f.Currency(totals.TotalItemDiscount),
		TotalDisplay:             f.Units(totals.Total),
	}
	if totals.GlobalDiscountAmount.GreaterThan(decimal.Zero) {
		t.GlobalDiscountAmountDisplay = "-" + f.Units(totals.GlobalDiscountAmount)
	}
	return uc.toCartResponse(c, t), nil
}

func (uc *CartUseCase) load(ctx context.Context, companyID, userID string) (*entity.Cart, error) {
	c, err := uc.store.Load(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &entity.Cart{CompanyID: companyID, UserID: userID}
	}
	return c, nil
}

func (uc *CartUseCase) mutate(ctx context.Context, companyID, userID string, fn func(*entity.Cart) error) (*dto.CartResponse, error) {
	c, err := uc.store.Update(ctx, companyID, userID, func(c *entity.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		c.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toCartResponse(c, nil), nil
}

func (uc *CartUseCase) toCartResponse(c *entity.Cart, totals *dto.CartTotalsDisplay) *dto.CartResponse {
	lines := make([]dto.CartLineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		gross := cart.LineGross(l)
		lines = append(lines, dto.CartLineResponse{
			ProductID:     l.ProductID,
			Name:          l.Name,
			SalePrice:     l.SalePrice,
			Quantity:      l.Quantity,
			Gross:         gross,
			DiscountType:  string(l.DiscountType),
			DiscountValue: l.DiscountValue,
			CanDecrement:  l.Quantity > cart.MinQuantity,
			Display:       uc.format.Currency(gross),
		})
	}
	return &dto.CartResponse{
		Lines:     lines,
		Units:     cart.Units(c),
		Totals:    totals,
		UpdatedAt: c.UpdatedAt,
	}
}
