package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DevolucionRequest struct {
	TicketID string `json:"ticket_id" validate:"required,uuid"`
	// Cantidades maps producto_ref to units returned. Negative values are
	// treated as zero.
	Cantidades map[string]int `json:"cantidades" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CierreResponse struct {
	ID             string          `json:"id"`
	Cajero         string          `json:"cajero"`
	NumTickets     int             `json:"num_tickets"`
	TotalFacturado decimal.Decimal `json:"total_facturado"`
	TotalEfectivo  decimal.Decimal `json:"total_efectivo"`
	TotalOtros     decimal.Decimal `json:"total_otros"`
	CreatedAt      string          `json:"created_at"`
}

// CierreDetalleResponse includes the ticket snapshot taken at close time.
type CierreDetalleResponse struct {
	CierreResponse
	Tickets []TicketResponse `json:"tickets"`
}

type NotaCreditoItemResponse struct {
	ProductoRef string          `json:"producto_ref"`
	Nombre      string          `json:"nombre"`
	Cantidad    int             `json:"cantidad"`
	Importe     decimal.Decimal `json:"importe"`
}

type NotaCreditoResponse struct {
	ID        string                    `json:"id"`
	TicketID  string                    `json:"ticket_id"`
	Total     decimal.Decimal           `json:"total"`
	Items     []NotaCreditoItemResponse `json:"items"`
	CreatedAt string                    `json:"created_at"`
}
