package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cierre is an immutable register-closure snapshot. Creating a cierre
// archives every open ticket (sets their CierreID) in the same transaction,
// so the open set is empty afterwards. TicketsJSON keeps a deep copy of the
// tickets exactly as they were at close time — later returns rewrite the
// ticket rows but never this snapshot.
type Cierre struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro         string          `gorm:"not null;index"`
	Cajero         string          `gorm:"not null"`
	NumTickets     int             `gorm:"not null"`
	TotalFacturado decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalEfectivo  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalOtros     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TicketsJSON    []byte          `gorm:"type:jsonb;column:tickets_json"`
	CreatedAt      time.Time
}

func (Cierre) TableName() string { return "cierres" }
