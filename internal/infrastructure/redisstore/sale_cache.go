package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
)

var _ ports.SaleCache = (*SaleCache)(nil)

// SaleCache respuestas crudas del backend de ventas, por ID. TTL corto: la fuente de verdad
// es el backend y la anulación invalida la entrada.
type SaleCache struct {
	s jsonStore
}

// NewSaleCache construye la caché. prefix típico: "pos:".
func NewSaleCache(client *redis.Client, prefix string, ttl time.Duration) *SaleCache {
	return &SaleCache{s: jsonStore{client: client, prefix: prefix + "sale", ttl: ttl}}
}

func (c *SaleCache) Get(ctx context.Context, saleID string) ([]byte, bool, error) {
	data, err := c.s.client.Get(ctx, c.s.key(saleID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (c *SaleCache) Set(ctx context.Context, saleID string, raw []byte) error {
	return c.s.client.Set(ctx, c.s.key(saleID), raw, c.s.ttl).Err()
}

func (c *SaleCache) Invalidate(ctx context.Context, saleID string) error {
	return c.s.client.Del(ctx, c.s.key(saleID)).Err()
}
