package repository

import (
	"context"

	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
)

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error)
	// ExistsByName compara sin distinguir mayúsculas y excluye excludeID (vacío = ninguno).
	ExistsByName(ctx context.Context, companyID, name, excludeID string) (bool, error)
}
