package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metodos de pago accepted at the cashier. Cierre aggregation splits
// Efectivo from everything else.
const (
	PagoEfectivo      = "Efectivo"
	PagoTarjeta       = "Tarjeta"
	PagoBizum         = "Bizum"
	PagoTransferencia = "Transferencia"
)

// Ticket is an immutable record of one completed charge. The only in-place
// mutation allowed is the quantity/total reduction performed by a return;
// everything else about a charge is corrected via NotaCredito records.
// CierreID == nil means the ticket is still in the open set.
type Ticket struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro string    `gorm:"not null;index"`
	Numero int       `gorm:"not null"`
	Cajero string    `gorm:"not null"`
	// ClienteID is optional — walk-in sales have no client attached and
	// accrue no loyalty points.
	ClienteID     *uuid.UUID `gorm:"type:uuid;index"`
	ClienteNombre *string
	MetodoPago    string          `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CanjePuntos records whether the 10% redemption discount was active at
	// charge time.
	CanjePuntos bool       `gorm:"not null;default:false"`
	CierreID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time

	Items []TicketItem `gorm:"foreignKey:TicketID"`
}

func (Ticket) TableName() string { return "tickets" }

// TicketItem is one charged cart line. ProductoRef is the catalog product id
// or the synthesized id of a manual line.
type TicketItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoRef    string          `gorm:"not null"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DescuentoPct   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
}

func (TicketItem) TableName() string { return "ticket_items" }
