package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Ledger y resúmenes mensuales.
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrInvalidMovementType    = errors.New("tipo de movimiento inválido")
	ErrInvalidItemType        = errors.New("tipo de ítem inválido")
	ErrInvalidPeriod          = errors.New("periodo inválido")
	ErrItemNotFound           = errors.New("ítem sin historial de movimientos")
	ErrConcurrentRegeneration = errors.New("el periodo se está regenerando en otro proceso")
)
