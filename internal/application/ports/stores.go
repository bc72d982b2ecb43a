package ports

import (
	"context"

	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
)

// Stores inyectados por constructor. No hay estado global: cada caso de uso recibe
// la implementación (Redis en producción, memoria en tests).

// SaleCache caché de respuestas crudas del backend de ventas, por ID de venta.
type SaleCache interface {
	Get(ctx context.Context, saleID string) ([]byte, bool, error)
	Set(ctx context.Context, saleID string, raw []byte) error
	Invalidate(ctx context.Context, saleID string) error
}

// CartStore persiste el carrito de un usuario.
type CartStore interface {
	// Load devuelve (nil, nil) si no existe.
	Load(ctx context.Context, companyID, userID string) (*entity.Cart, error)
	// Update aplica fn al carrito actual (vacío si no existe) y lo guarda de forma
	// atómica frente a otras escrituras; fn puede ejecutarse más de una vez.
	Update(ctx context.Context, companyID, userID string, fn func(*entity.Cart) error) (*entity.Cart, error)
	Delete(ctx context.Context, companyID, userID string) error
}

// BranchContextStore sucursal/caja seleccionada por usuario.
type BranchContextStore interface {
	// Get devuelve (nil, nil) si el usuario no ha seleccionado sucursal.
	Get(ctx context.Context, companyID, userID string) (*entity.BranchContext, error)
	Set(ctx context.Context, companyID, userID string, bc entity.BranchContext) error
	Clear(ctx context.Context, companyID, userID string) error
}
