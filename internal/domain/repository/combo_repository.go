package repository

import "github.com/jhoicas/ventas-pos-api/internal/domain/entity"

// ComboRepository puerto de persistencia para combos y sus componentes.
type ComboRepository interface {
	Create(combo *entity.Combo) error
	CreateItem(item *entity.ComboItem) error
	GetByID(id string) (*entity.Combo, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Combo, error)
}
