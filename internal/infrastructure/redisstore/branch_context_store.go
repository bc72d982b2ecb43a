package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
)

var _ ports.BranchContextStore = (*BranchContextStore)(nil)

// BranchContextStore sucursal y caja seleccionadas. Sin TTL: persiste hasta Clear.
type BranchContextStore struct {
	s jsonStore
}

// NewBranchContextStore construye el store.
func NewBranchContextStore(client *redis.Client, prefix string) *BranchContextStore {
	return &BranchContextStore{s: jsonStore{client: client, prefix: prefix + "branch"}}
}

func (b *BranchContextStore) Get(ctx context.Context, companyID, userID string) (*entity.BranchContext, error) {
	var bc entity.BranchContext
	ok, err := b.s.getJSON(ctx, b.s.key(companyID, userID), &bc)
	if err != nil || !ok {
		return nil, err
	}
	return &bc, nil
}

func (b *BranchContextStore) Set(ctx context.Context, companyID, userID string, bc entity.BranchContext) error {
	return b.s.setJSON(ctx, b.s.key(companyID, userID), bc)
}

func (b *BranchContextStore) Clear(ctx context.Context, companyID, userID string) error {
	return b.s.client.Del(ctx, b.s.key(companyID, userID)).Err()
}
