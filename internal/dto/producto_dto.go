package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre    string          `json:"nombre"    validate:"required,min=1,max=200"`
	Categoria string          `json:"categoria" validate:"omitempty,max=100"`
	Precio    decimal.Decimal `json:"precio"    validate:"required"`
}

type ActualizarProductoRequest = CrearProductoRequest

type PrecioEspecialRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	// Exactly one of PrecioFijo / DescuentoPct must be set.
	PrecioFijo   *decimal.Decimal `json:"precio_fijo"`
	DescuentoPct *decimal.Decimal `json:"descuento_pct"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Precio    decimal.Decimal `json:"precio"`
	Activo    bool            `json:"activo"`
}

type PrecioEspecialResponse struct {
	ProductoID   string           `json:"producto_id"`
	ClienteID    string           `json:"cliente_id"`
	PrecioFijo   *decimal.Decimal `json:"precio_fijo,omitempty"`
	DescuentoPct *decimal.Decimal `json:"descuento_pct,omitempty"`
}
