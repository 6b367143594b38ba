package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=1,max=200"`
	Telefono *string `json:"telefono" validate:"omitempty,min=6"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

type ActualizarClienteRequest = CrearClienteRequest

type RegistrarCursoRequest struct {
	Curso string `json:"curso" validate:"required,min=1"`
	Fecha string `json:"fecha" validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CompraResponse struct {
	Fecha    string          `json:"fecha"`
	Producto string          `json:"producto"`
	Importe  decimal.Decimal `json:"importe"`
}

type CursoRealizadoResponse struct {
	Curso string `json:"curso"`
	Fecha string `json:"fecha"`
}

type ClienteResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono,omitempty"`
	Email    *string `json:"email,omitempty"`
	Puntos   int     `json:"puntos"`
}

type ClienteDetalleResponse struct {
	ClienteResponse
	Compras []CompraResponse         `json:"compras"`
	Cursos  []CursoRealizadoResponse `json:"cursos"`
}
