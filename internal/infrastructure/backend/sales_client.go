// Package backend cliente HTTP del backend REST de ventas.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/pkg/config"
)

var _ ports.SaleSource = (*SalesClient)(nil)

// maxBody límite de lectura de respuestas (una venta con cientos de líneas cabe de sobra).
const maxBody = 4 << 20

// SalesClient consulta y anula ventas en el backend. No reintenta: un fallo se informa
// al llamador tal cual.
type SalesClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewSalesClient construye el cliente con el timeout configurado.
func NewSalesClient(cfg config.UpstreamConfig) *SalesClient {
	return &SalesClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
	}
}

// FetchSale GET /sales/{id}. Devuelve el cuerpo sin interpretar.
func (c *SalesClient) FetchSale(ctx context.Context, saleID string) ([]byte, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/sales/"+url.PathEscape(saleID), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case status != http.StatusOK:
		return nil, fmt.Errorf("%w: sales returned status %d: %s", domain.ErrUpstream, status, snippet(body))
	}
	return body, nil
}

// AnnulSale POST /sales/{id}/annul con {"reason": ...}.
func (c *SalesClient) AnnulSale(ctx context.Context, saleID, reason string) error {
	payload, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return err
	}
	body, status, err := c.do(ctx, http.MethodPost, "/sales/"+url.PathEscape(saleID)+"/annul", payload)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusConflict:
		return domain.ErrSaleAlreadyAnulled
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, snippet(body))
	case status < 200 || status > 299:
		return fmt.Errorf("%w: annul returned status %d: %s", domain.ErrUpstream, status, snippet(body))
	}
	return nil
}

// Ping GET /health; cualquier 2xx es sano.
func (c *SalesClient) Ping(ctx context.Context) error {
	_, status, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: health returned status %d", domain.ErrUpstream, status)
	}
	return nil
}

func (c *SalesClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: error reading response: %v", domain.ErrUpstream, err)
	}
	return body, resp.StatusCode, nil
}

func snippet(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}
