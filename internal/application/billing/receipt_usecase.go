package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/normalize"
	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/receipt"
	"github.com/jhoicas/ventas-pos-api/pkg/logger"
	"github.com/jhoicas/ventas-pos-api/pkg/money"
)

const pingTimeout = 3 * time.Second

// ReceiptUseCase arma el recibo de una venta: trae la venta del backend (o de la caché),
// la normaliza y concilia los descuentos por línea contra el descuento total.
// Nunca modifica la venta localmente; la anulación se delega al backend.
type ReceiptUseCase struct {
	source  ports.SaleSource
	cache   ports.SaleCache
	format  *money.Formatter
	metrics ports.Metrics
	log     *logger.Logger
}

// NewReceiptUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewReceiptUseCase(
	source ports.SaleSource,
	cache ports.SaleCache,
	format *money.Formatter,
	metrics ports.Metrics,
	log *logger.Logger,
) *ReceiptUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiptUseCase{
		source:  source,
		cache:   cache,
		format:  format,
		metrics: metrics,
		log:     log.Named("receipt"),
	}
}

// GetReceipt devuelve el recibo listo para mostrar.
//
// Retorna:
//   - domain.ErrNotFound         si la venta no existe en el backend.
//   - domain.ErrForbidden        si la venta pertenece a otra empresa.
//   - domain.ErrUnknownSaleShape si la respuesta del backend no tiene un formato conocido.
//   - domain.ErrUpstream         si el backend no respondió.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, companyID, saleID string) (*dto.ReceiptResponse, error) {
	saleID = strings.TrimSpace(saleID)
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.loadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	// Si el backend no informa la empresa se confía en el alcance del token de servicio.
	if sale.CompanyID != "" && sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if sale.ID == "" {
		sale.ID = saleID
	}

	resp := uc.toReceiptResponse(sale)
	uc.metrics.ReceiptServed(resp.HasGlobalDiscount)
	return resp, nil
}

// AnnulSale anula la venta en el backend, invalida la caché y devuelve el recibo actualizado.
func (uc *ReceiptUseCase) AnnulSale(ctx context.Context, companyID, saleID string, in dto.AnnulSaleRequest) (*dto.ReceiptResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.GetReceipt(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if current.Annulled {
		return nil, domain.ErrSaleAlreadyAnulled
	}

	if err := uc.source.AnnulSale(ctx, current.SaleID, reason); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.metrics.UpstreamError("annul")
		}
		return nil, fmt.Errorf("receipt: anular venta %s: %w", current.SaleID, err)
	}
	if err := uc.cache.Invalidate(ctx, current.SaleID); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", current.SaleID).Msg("no se pudo invalidar la caché")
	}
	uc.log.Info().Str("sale_id", current.SaleID).Str("company_id", companyID).Msg("venta anulada")

	return uc.GetReceipt(ctx, companyID, current.SaleID)
}

// CheckUpstream verifica que el backend de ventas responda. Sin reintentos.
func (uc *ReceiptUseCase) CheckUpstream(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := uc.source.Ping(ctx); err != nil {
		uc.metrics.UpstreamError("ping")
		return err
	}
	return nil
}

func (uc *ReceiptUseCase) loadSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	raw, hit, err := uc.cache.Get(ctx, saleID)
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("caché de ventas no disponible")
		hit = false
	}
	if hit {
		sale, shape, nErr := normalize.Sale(raw)
		if nErr == nil {
			uc.log.Debug().Str("sale_id", saleID).Stringer("shape", shape).Msg("venta desde caché")
			return sale, nil
		}
		_ = uc.cache.Invalidate(ctx, saleID)
	}

	raw, err = uc.source.FetchSale(ctx, saleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		uc.metrics.UpstreamError("fetch")
		uc.log.Error().Err(err).Str("sale_id", saleID).Msg("error consultando venta")
		return nil, fmt.Errorf("receipt: obtener venta %s: %w", saleID, err)
	}
	sale, shape, err := normalize.Sale(raw)
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("respuesta de venta no reconocida")
		return nil, err
	}
	uc.log.Debug().Str("sale_id", saleID).Stringer("shape", shape).Msg("venta desde backend")
	if err := uc.cache.Set(ctx, saleID, raw); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("no se pudo cachear la venta")
	}
	return sale, nil
}

func (uc *ReceiptUseCase) toReceiptResponse(s *entity.Sale) *dto.ReceiptResponse {
	f := uc.format
	lines := make([]dto.ReceiptLineResponse, 0, len(s.Items))
	gross := decimal.Zero
	for _, it := range s.Items {
		g := it.Gross()
		d := receipt.ResolveItemDiscount(it)
		net := g.Sub(d)
		gross = gross.Add(g)
		line := dto.ReceiptLineResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Gross:       g,
			Discount:    d,
			Net:         net,
			DiscountTag: uc.discountTag(it),
			Display: dto.LineDisplay{
				UnitPrice: f.Currency(it.UnitPrice),
				Gross:     f.Currency(g),
				Net:       f.Currency(net),
			},
		}
		if d.GreaterThan(decimal.Zero) {
			line.Display.Discount = "-" + f.Currency(d)
		}
		lines = append(lines, line)
	}

	split := receipt.SplitDiscount(s.Items, s.DiscountAmount)

	subtotal := s.Subtotal
	if subtotal.IsZero() {
		subtotal = gross
	}
	taxes := make([]dto.ReceiptTaxResponse, 0, len(s.Taxes))
	for _, t := range s.Taxes {
		taxes = append(taxes, dto.ReceiptTaxResponse{Rate: t.Rate, Base: t.Base, Amount: t.Amount})
	}

	resp := &dto.ReceiptResponse{
		SaleID:             s.ID,
		Number:             s.Number,
		Date:               f.Date(s.Date),
		CustomerName:       s.CustomerName,
		PaymentMethod:      s.PaymentMethod,
		Status:             s.Status,
		Annulled:           s.IsAnnulled(),
		AnnulReason:        s.AnnulReason,
		Currency:           f.Code(),
		Lines:              lines,
		Subtotal:           subtotal,
		SubtotalNet:        s.SubtotalNet,
		ItemDiscountSum:    split.ItemDiscountSum,
		GlobalOnlyDiscount: split.GlobalOnlyDiscount,
		HasGlobalDiscount:  split.HasGlobalDiscount,
		DiscountAmount:     s.DiscountAmount,
		TaxTotal:           s.TaxTotal,
		Taxes:              taxes,
		Total:              s.Total,
		Display: dto.ReceiptDisplay{
			Subtotal:        f.Currency(subtotal),
			ItemDiscountSum: f.Currency(split.ItemDiscountSum),
			TaxTotal:        f.Currency(s.TaxTotal),
			Total:           f.Units(s.Total),
		},
	}
	if split.HasGlobalDiscount {
		resp.Display.GlobalOnlyDiscount = "-" + f.Units(split.GlobalOnlyDiscount)
	}
	return resp
}

// discountTag etiqueta de la línea: "10%" o el monto fijo formateado.
func (uc *ReceiptUseCase) discountTag(it entity.SaleItem) string {
	if !it.DiscountValue.GreaterThan(decimal.Zero) {
		return ""
	}
	switch it.DiscountType {
	case entity.DiscountPercent:
		return it.DiscountValue.String() + "%"
	case entity.DiscountAmount:
		return uc.format.Currency(it.DiscountValue)
	}
	return ""
}
