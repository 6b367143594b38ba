package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarProductoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
}

type AgregarLineaManualRequest struct {
	Nombre   string          `json:"nombre"   validate:"required,min=1"`
	Precio   decimal.Decimal `json:"precio"   validate:"required"`
	Cantidad int             `json:"cantidad" validate:"required,min=1"`
}

type DescuentoLineaRequest struct {
	ProductoRef  string          `json:"producto_ref"  validate:"required"`
	DescuentoPct decimal.Decimal `json:"descuento_pct" validate:"min=0,max=100"`
}

type QuitarLineaRequest struct {
	ProductoRef string `json:"producto_ref" validate:"required"`
}

type AsignarClienteRequest struct {
	// ClienteID null detaches the client from the cart.
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
}

type CobrarRequest struct {
	MetodoPago string `json:"metodo_pago" validate:"required,oneof=Efectivo Tarjeta Bizum Transferencia"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaCarritoResponse struct {
	ProductoRef    string          `json:"producto_ref"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	Lineas      []LineaCarritoResponse `json:"lineas"`
	ClienteID   *string                `json:"cliente_id,omitempty"`
	CanjeActivo bool                   `json:"canje_activo"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	Total       decimal.Decimal        `json:"total"`
}

type TicketItemResponse struct {
	ProductoRef    string          `json:"producto_ref"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
}

type TicketResponse struct {
	ID            string               `json:"id"`
	Numero        int                  `json:"numero"`
	Cajero        string               `json:"cajero"`
	ClienteID     *string              `json:"cliente_id,omitempty"`
	ClienteNombre *string              `json:"cliente_nombre,omitempty"`
	MetodoPago    string               `json:"metodo_pago"`
	Total         decimal.Decimal      `json:"total"`
	CanjePuntos   bool                 `json:"canje_puntos"`
	CierreID      *string              `json:"cierre_id,omitempty"`
	Items         []TicketItemResponse `json:"items"`
	CreatedAt     string               `json:"created_at"`
}
