package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/backend"
	"github.com/jhoicas/ventas-pos-api/pkg/config"
)

func newServer(t *testing.T, h http.HandlerFunc) *backend.SalesClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewSalesClient(config.UpstreamConfig{BaseURL: srv.URL, Token: "tok", Timeout: time.Second})
}

func TestFetchSale(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/sales/s-1":
			_, _ = w.Write([]byte(`{"data":{"id":"s-1","items":[]}}`))
		case "/sales/falla":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	raw, err := c.FetchSale(ctx, "s-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"id":"s-1","items":[]}}`, string(raw))

	_, err = c.FetchSale(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.FetchSale(ctx, "falla")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestAnnulSale(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.URL.Path {
		case "/sales/s-1/annul":
			assert.Equal(t, "error de cobro", body["reason"])
			w.WriteHeader(http.StatusNoContent)
		case "/sales/s-2/annul":
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	ctx := context.Background()

	assert.NoError(t, c.AnnulSale(ctx, "s-1", "error de cobro"))
	assert.ErrorIs(t, c.AnnulSale(ctx, "s-2", "x"), domain.ErrSaleAlreadyAnulled)
	assert.ErrorIs(t, c.AnnulSale(ctx, "s-3", "x"), domain.ErrUpstream)
}

func TestPing(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
	assert.NoError(t, c.Ping(context.Background()))
	healthy.Store(false)
	assert.ErrorIs(t, c.Ping(context.Background()), domain.ErrUpstream)

	down := backend.NewSalesClient(config.UpstreamConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.ErrorIs(t, down.Ping(context.Background()), domain.ErrUpstream)
}
