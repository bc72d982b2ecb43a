package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateComboRequest entrada para crear un combo.
type CreateComboRequest struct {
	Name  string             `json:"name" validate:"required,min=1,max=200"`
	Price decimal.Decimal    `json:"price"`
	Items []ComboItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ComboItemRequest componente del combo.
type ComboItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// ComboResponse salida de un combo.
type ComboResponse struct {
	ID        string              `json:"id"`
	CompanyID string              `json:"company_id"`
	Name      string              `json:"name"`
	Price     decimal.Decimal     `json:"price"`
	Items     []ComboItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

// ComboItemResponse componente en la respuesta.
type ComboItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// ComboListResponse lista paginada de combos.
type ComboListResponse struct {
	Items []ComboResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ComboQuoteResponse cotización del combo frente a la compra por separado.
type ComboQuoteResponse struct {
	ComboID      string          `json:"combo_id"`
	RegularPrice decimal.Decimal `json:"regular_price"`
	ComboPrice   decimal.Decimal `json:"combo_price"`
	Savings      decimal.Decimal `json:"savings"`
	Stale        bool            `json:"stale"`
}
