package entity

import "time"

// Supplier proveedor de la empresa. El nombre es único por empresa (sin distinguir mayúsculas).
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
