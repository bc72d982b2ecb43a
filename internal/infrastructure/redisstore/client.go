// Package redisstore implementa los stores de sesión y la caché de ventas sobre Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ventas-pos-api/pkg/config"
)

// NewClient abre la conexión y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// jsonStore guarda valores JSON bajo prefix + key con TTL.
type jsonStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (s jsonStore) key(parts ...string) string {
	return s.prefix + ":" + strings.Join(parts, ":")
}

func (s jsonStore) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// Un valor corrupto se trata como ausente.
		_ = s.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (s jsonStore) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}
