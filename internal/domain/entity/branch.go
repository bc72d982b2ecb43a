package entity

import "time"

// Branch representa una sucursal de la empresa (punto de venta físico).
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de caja.
const (
	RegisterOpen   = "open"
	RegisterClosed = "closed"
)

// CashRegister caja registradora de una sucursal.
type CashRegister struct {
	ID        string
	BranchID  string
	CompanyID string
	Name      string
	Status    string
	OpenedAt  *time.Time
	UpdatedAt time.Time
}

// BranchContext sucursal y caja seleccionadas por un usuario.
type BranchContext struct {
	BranchID       string    `json:"branch_id"`
	CashRegisterID string    `json:"cash_register_id"`
	SelectedAt     time.Time `json:"selected_at"`
}
