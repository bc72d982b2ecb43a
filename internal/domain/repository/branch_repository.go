package repository

import "github.com/jhoicas/ventas-pos-api/internal/domain/entity"

// BranchRepository puerto de lectura de sucursales.
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
	ListByCompany(companyID string) ([]*entity.Branch, error)
}

// CashRegisterRepository puerto de lectura de cajas.
type CashRegisterRepository interface {
	GetByID(id string) (*entity.CashRegister, error)
	ListByBranch(branchID string) ([]*entity.CashRegister, error)
}
