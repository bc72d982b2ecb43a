package ports

import "context"

// SaleSource puerto de salida hacia el backend REST de ventas.
// Devuelve el cuerpo JSON tal cual; la normalización ocurre en la aplicación.
type SaleSource interface {
	// FetchSale retorna domain.ErrNotFound si la venta no existe.
	FetchSale(ctx context.Context, saleID string) ([]byte, error)
	AnnulSale(ctx context.Context, saleID, reason string) error
	Ping(ctx context.Context) error
}

// Metrics contadores de negocio. La implementación Prometheus vive en infrastructure/metrics.
type Metrics interface {
	ReceiptServed(hasGlobalDiscount bool)
	StaleResultDiscarded(kind string)
	UpstreamError(op string)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) ReceiptServed(bool)          {}
func (NopMetrics) StaleResultDiscarded(string) {}
func (NopMetrics) UpstreamError(string)        {}
