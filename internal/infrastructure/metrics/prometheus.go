// Package metrics contadores Prometheus del servicio y el handler /metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
)

var _ ports.Metrics = (*Metrics)(nil)

// Metrics agrupa los colectores de negocio y HTTP.
type Metrics struct {
	gatherer prometheus.Gatherer

	Receipts     *prometheus.CounterVec
	Stale        *prometheus.CounterVec
	Upstream     *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New registra los colectores en reg (nil = registro por defecto).
func New(namespace string, reg *prometheus.Registry) *Metrics {
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	m := &Metrics{
		gatherer: gatherer,
		Receipts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_served_total",
			Help:      "Recibos servidos, por presencia de descuento global.",
		}, []string{"global_discount"}),
		Stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_discarded_total",
			Help:      "Resultados asíncronos descartados por llegar después de uno más reciente.",
		}, []string{"kind"}),
		Upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Errores al llamar al backend de ventas.",
		}, []string{"op"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP atendidos.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "Latencia HTTP en milisegundos.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
	}
	m.Receipts = mustRegister(registerer, m.Receipts)
	m.Stale = mustRegister(registerer, m.Stale)
	m.Upstream = mustRegister(registerer, m.Upstream)
	m.HTTPRequests = mustRegister(registerer, m.HTTPRequests)
	m.HTTPDuration = mustRegister(registerer, m.HTTPDuration)
	return m
}

func (m *Metrics) ReceiptServed(hasGlobalDiscount bool) {
	m.Receipts.WithLabelValues(strconv.FormatBool(hasGlobalDiscount)).Inc()
}

func (m *Metrics) StaleResultDiscarded(kind string) {
	m.Stale.WithLabelValues(kind).Inc()
}

func (m *Metrics) UpstreamError(op string) {
	m.Upstream.WithLabelValues(op).Inc()
}

// Middleware mide cada request por ruta registrada (no por path concreto).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		route := c.Route().Path
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(float64(time.Since(start)) / float64(time.Millisecond))
		return err
	}
}

// Handler expone el formato de texto de Prometheus en Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}

// mustRegister registra c; si ya estaba registrado reutiliza el existente.
func mustRegister[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
