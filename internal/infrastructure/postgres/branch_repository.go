package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/repository"
)

var (
	_ repository.BranchRepository       = (*BranchRepo)(nil)
	_ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)
)

// BranchRepo lectura de sucursales.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// GetByID obtiene una sucursal; (nil, nil) si no existe.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	var b entity.Branch
	err := r.q.QueryRow(context.Background(),
		`SELECT id, company_id, name, address, created_at, updated_at FROM branches WHERE id = $1`, id).
		Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// ListByCompany lista sucursales por nombre.
func (r *BranchRepo) ListByCompany(companyID string) ([]*entity.Branch, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, company_id, name, address, created_at, updated_at FROM branches WHERE company_id = $1 ORDER BY name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// CashRegisterRepo lectura de cajas; company_id se resuelve por la sucursal.
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador.
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

const cashRegisterSelect = `
	SELECT cr.id, cr.branch_id, b.company_id, cr.name, cr.status, cr.opened_at, cr.updated_at
	FROM cash_registers cr JOIN branches b ON b.id = cr.branch_id`

// GetByID obtiene una caja; (nil, nil) si no existe.
func (r *CashRegisterRepo) GetByID(id string) (*entity.CashRegister, error) {
	var c entity.CashRegister
	err := r.q.QueryRow(context.Background(), cashRegisterSelect+` WHERE cr.id = $1`, id).
		Scan(&c.ID, &c.BranchID, &c.CompanyID, &c.Name, &c.Status, &c.OpenedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash register: %w", err)
	}
	return &c, nil
}

// ListByBranch lista las cajas de una sucursal.
func (r *CashRegisterRepo) ListByBranch(branchID string) ([]*entity.CashRegister, error) {
	rows, err := r.q.Query(context.Background(), cashRegisterSelect+` WHERE cr.branch_id = $1 ORDER BY cr.name`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashRegister
	for rows.Next() {
		var c entity.CashRegister
		if err := rows.Scan(&c.ID, &c.BranchID, &c.CompanyID, &c.Name, &c.Status, &c.OpenedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cash register: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
