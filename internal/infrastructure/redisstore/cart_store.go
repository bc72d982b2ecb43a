package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
)

var _ ports.CartStore = (*CartStore)(nil)

// maxUpdateAttempts reintentos de Update cuando otra escritura gana la carrera.
const maxUpdateAttempts = 5

// CartStore un carrito por (empresa, usuario). Cada Update renueva el TTL.
type CartStore struct {
	s jsonStore
}

// NewCartStore construye el store.
func NewCartStore(client *redis.Client, prefix string, ttl time.Duration) *CartStore {
	return &CartStore{s: jsonStore{client: client, prefix: prefix + "cart", ttl: ttl}}
}

func (c *CartStore) Load(ctx context.Context, companyID, userID string) (*entity.Cart, error) {
	var cart entity.Cart
	ok, err := c.s.getJSON(ctx, c.s.key(companyID, userID), &cart)
	if err != nil || !ok {
		return nil, err
	}
	return &cart, nil
}

// Update lee, modifica y escribe el carrito bajo WATCH: si otra petición lo cambió
// entre la lectura y el EXEC, se vuelve a leer y fn se aplica de nuevo sobre el valor
// actual. Agotados los intentos devuelve domain.ErrConflict.
func (c *CartStore) Update(ctx context.Context, companyID, userID string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	key := c.s.key(companyID, userID)
	var out *entity.Cart
	txf := func(tx *redis.Tx) error {
		cart := &entity.Cart{CompanyID: companyID, UserID: userID}
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if json.Unmarshal(data, cart) != nil {
				// Un valor corrupto se reemplaza por un carrito vacío.
				cart = &entity.Cart{CompanyID: companyID, UserID: userID}
			}
		}
		if err := fn(cart); err != nil {
			return err
		}
		payload, err := json.Marshal(cart)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		out = cart
		return nil
	}
	for i := 0; i < maxUpdateAttempts; i++ {
		err := c.s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, domain.ErrConflict
}

func (c *CartStore) Delete(ctx context.Context, companyID, userID string) error {
	return c.s.client.Del(ctx, c.s.key(companyID, userID)).Err()
}
