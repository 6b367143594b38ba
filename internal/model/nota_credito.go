package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotaCredito records a partial or full return against a ticket. It references
// the ticket but does not own it; the note itself is never mutated.
type NotaCredito struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro    string          `gorm:"not null;index"`
	TicketID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Items []NotaCreditoItem `gorm:"foreignKey:NotaCreditoID"`
}

func (NotaCredito) TableName() string { return "notas_credito" }

// NotaCreditoItem is one returned line. Importe is PrecioUnitario × Cantidad
// at the ticket line's custom price — the line's manual discount is not
// applied here (historical behavior, see DevolucionService).
type NotaCreditoItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NotaCreditoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoRef   string          `gorm:"not null"`
	Nombre        string          `gorm:"not null"`
	Cantidad      int             `gorm:"not null"`
	Importe       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (NotaCreditoItem) TableName() string { return "nota_credito_items" }
