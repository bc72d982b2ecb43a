package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/metrics"
)

func TestContadores(t *testing.T) {
	m := metrics.New("pos", prometheus.NewRegistry())

	m.ReceiptServed(true)
	m.ReceiptServed(false)
	m.ReceiptServed(true)
	m.StaleResultDiscarded("combo_quote")
	m.UpstreamError("fetch")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Receipts.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Receipts.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Stale.WithLabelValues("combo_quote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Upstream.WithLabelValues("fetch")))
}

func TestRegistroDobleReutiliza(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := metrics.New("pos", reg)
	b := metrics.New("pos", reg)
	a.UpstreamError("ping")
	assert.Equal(t, 1.0, testutil.ToFloat64(b.Upstream.WithLabelValues("ping")))
}

func TestMiddlewareYHandler(t *testing.T) {
	m := metrics.New("pos", prometheus.NewRegistry())
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/items/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/items/:id", "204")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "pos_http_requests_total")
}
