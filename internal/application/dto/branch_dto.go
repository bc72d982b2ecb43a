package dto

import "time"

// BranchResponse salida de una sucursal con sus cajas.
type BranchResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Address       string                 `json:"address,omitempty"`
	CashRegisters []CashRegisterResponse `json:"cash_registers,omitempty"`
}

// CashRegisterResponse estado de una caja.
type CashRegisterResponse struct {
	ID       string     `json:"id"`
	BranchID string     `json:"branch_id"`
	Name     string     `json:"name"`
	Status   string     `json:"status"` // open | closed
	OpenedAt *time.Time `json:"opened_at,omitempty"`
}

// SelectBranchRequest body para PUT /api/session/branch.
type SelectBranchRequest struct {
	BranchID       string `json:"branch_id" validate:"required"`
	CashRegisterID string `json:"cash_register_id" validate:"required"`
}

// BranchContextResponse contexto actual del usuario.
type BranchContextResponse struct {
	Branch       BranchResponse       `json:"branch"`
	CashRegister CashRegisterResponse `json:"cash_register"`
	SelectedAt   time.Time            `json:"selected_at"`
}
