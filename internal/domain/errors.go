package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnknownSaleShape   = errors.New("formato de venta desconocido")
	ErrUpstream           = errors.New("backend de ventas no disponible")
	ErrSaleAlreadyAnulled = errors.New("la venta ya está anulada")
)
