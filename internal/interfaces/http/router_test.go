package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-api/internal/application/billing"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/redisstore"
	apphttp "github.com/jhoicas/ventas-pos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ventas-pos-api/pkg/jwt"
	"github.com/jhoicas/ventas-pos-api/pkg/money"
)

type stubSales struct {
	mu      sync.Mutex
	sales   map[string]string
	pingErr error
}

func (s *stubSales) FetchSale(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return []byte(raw), nil
}

func (s *stubSales) AnnulSale(_ context.Context, id, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales[id] = `{"id":"` + id + `","company_id":"` + testCompanyID + `","status":"annulled","items":[]}`
	return nil
}

func (s *stubSales) Ping(context.Context) error { return s.pingErr }

type stubProducts struct {
	items map[string]*entity.Product
}

func (r *stubProducts) Create(p *entity.Product) error { r.items[p.ID] = p; return nil }
func (r *stubProducts) GetByID(id string) (*entity.Product, error) {
	return r.items[id], nil
}
func (r *stubProducts) GetByCompanyAndSKU(string, string) (*entity.Product, error) { return nil, nil }
func (r *stubProducts) Update(p *entity.Product) error                             { r.items[p.ID] = p; return nil }
func (r *stubProducts) ListByCompany(string, int, int) ([]*entity.Product, error)  { return nil, nil }

type stubSuppliers struct {
	names map[string]bool
}

func (r *stubSuppliers) Create(s *entity.Supplier) error {
	r.names[strings.ToLower(s.Name)] = true
	return nil
}
func (r *stubSuppliers) GetByID(string) (*entity.Supplier, error)                   { return nil, nil }
func (r *stubSuppliers) Update(*entity.Supplier) error                              { return nil }
func (r *stubSuppliers) ListByCompany(string, int, int) ([]*entity.Supplier, error) { return nil, nil }
func (r *stubSuppliers) ExistsByName(_ context.Context, _, name, _ string) (bool, error) {
	return r.names[strings.ToLower(name)], nil
}

const routerSale = `{"sale":{
  "id":"s-1","company_id":"` + testCompanyID + `","number":"POS-0001","status":"completed",
  "discount_amount":34.6,"total":"245.4",
  "items":[
    {"product_id":"p-1","product_name":"Café","quantity":"2","unit_price":100,"discount_type":"percentage","discount_value":10},
    {"product_id":"p-2","product_name":"Pan","qty":1,"price":"80"}
  ]}}`

func newTestServer(t *testing.T) (*fiber.App, *stubSales) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f, err := money.NewFormatter("en", "USD", "")
	require.NoError(t, err)

	sales := &stubSales{sales: map[string]string{"s-1": routerSale}}
	products := &stubProducts{items: map[string]*entity.Product{
		"p-1": {ID: "p-1", CompanyID: testCompanyID, Name: "Café", Price: decimal.NewFromInt(100), Active: true},
	}}
	receipts := billing.NewReceiptUseCase(sales, redisstore.NewSaleCache(client, "pos:", time.Minute), f, nil, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "ventas-pos-api",
		ReceiptUC:   receipts,
		CartUC:      usecase.NewCartUseCase(redisstore.NewCartStore(client, "pos:", time.Hour), products, f),
		SupplierUC:  usecase.NewSupplierUseCase(&stubSuppliers{names: map[string]bool{"lácteos sa": true}}, nil, nil, time.Minute),
		JWTSecret:   testJWTSecret,
	})
	return app, sales
}

func call(t *testing.T, app *fiber.App, method, path, role, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func TestRouter_Health(t *testing.T) {
	app, sales := newTestServer(t)

	status, body := call(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = call(t, app, http.MethodGet, "/health/upstream", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	sales.pingErr = errors.Join(domain.ErrUpstream, errors.New("connection refused"))
	status, body = call(t, app, http.MethodGet, "/health/upstream", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "down", body["status"])
}

func TestRouter_Receipt(t *testing.T) {
	app, _ := newTestServer(t)

	status, body := call(t, app, http.MethodGet, "/api/sales/s-1/receipt", apphttp.RoleCashier, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["has_global_discount"])
	display := body["display"].(map[string]any)
	assert.Equal(t, "-$ 15", display["global_only_discount"])
	assert.Equal(t, "$ 245", display["total"])

	status, body = call(t, app, http.MethodGet, "/api/sales/nada/receipt", apphttp.RoleCashier, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	status, _ = call(t, app, http.MethodGet, "/api/sales/s-1/receipt", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_ReceiptOtraEmpresa(t *testing.T) {
	app, _ := newTestServer(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Identity{UserID: testUserID, CompanyID: "otra", Role: "admin"}, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/s-1/receipt", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_Annul(t *testing.T) {
	app, _ := newTestServer(t)

	status, _ := call(t, app, http.MethodPost, "/api/sales/s-1/annul", apphttp.RoleCashier, `{"reason":"cliente devolvió"}`)
	assert.Equal(t, http.StatusForbidden, status, "un cajero no anula")

	status, body := call(t, app, http.MethodPost, "/api/sales/s-1/annul", apphttp.RoleAdmin, `{"reason":"no"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/sales/s-1/annul", apphttp.RoleSupervisor, `{"reason":"cliente devolvió"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["annulled"])

	status, body = call(t, app, http.MethodPost, "/api/sales/s-1/annul", apphttp.RoleAdmin, `{"reason":"cliente devolvió"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_ANNULLED", body["code"])
}

func TestRouter_Cart(t *testing.T) {
	app, _ := newTestServer(t)

	status, body := call(t, app, http.MethodPost, "/api/cart/items", apphttp.RoleCashier, `{"product_id":"p-1","quantity":1}`)
	require.Equal(t, http.StatusCreated, status)
	lines := body["lines"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, false, lines[0].(map[string]any)["can_decrement"])

	status, body = call(t, app, http.MethodPost, "/api/cart/items/p-1/decrement", apphttp.RoleCashier, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["lines"].([]any)[0].(map[string]any)["quantity"], "no baja de 1")

	status, body = call(t, app, http.MethodPost, "/api/cart/items/p-1/increment", apphttp.RoleCashier, "")
	require.Equal(t, http.StatusOK, status)
	line := body["lines"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 2, line["quantity"])
	assert.Equal(t, true, line["can_decrement"])

	status, body = call(t, app, http.MethodGet, "/api/cart/summary?total=245.4&global_discount_amount=15&subtotal_net=280", apphttp.RoleCashier, "")
	require.Equal(t, http.StatusOK, status)
	totals := body["totals"].(map[string]any)
	assert.Equal(t, "$ 245", totals["total_display"], "el total se formatea tal cual llega")
	assert.Equal(t, "-$ 15", totals["global_discount_amount_display"])

	status, body = call(t, app, http.MethodPost, "/api/cart/items", apphttp.RoleCashier, `{"product_id":"p-1","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, _ = call(t, app, http.MethodDelete, "/api/cart/items/p-1", apphttp.RoleCashier, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodDelete, "/api/cart", apphttp.RoleCashier, "")
	assert.Equal(t, http.StatusNoContent, status)
}

func TestRouter_VerificacionDeNombre(t *testing.T) {
	app, _ := newTestServer(t)

	status, _ := call(t, app, http.MethodGet, "/api/suppliers/name-check/last", apphttp.RoleCashier, "")
	assert.Equal(t, http.StatusNotFound, status, "sin verificaciones previas")

	status, body := call(t, app, http.MethodGet, "/api/suppliers/name-check?name=L%C3%A1cteos%20SA", apphttp.RoleCashier, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["available"])

	status, body = call(t, app, http.MethodGet, "/api/suppliers/name-check/last", apphttp.RoleCashier, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Lácteos SA", body["name"])

	req := httptest.NewRequest(http.MethodGet, "/api/suppliers/name-check/last", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleCashier))
	req.Header.Set("X-Session-ID", "otro-formulario")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "cada formulario tiene su propio resultado")
}
