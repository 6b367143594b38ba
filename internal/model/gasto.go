package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is one business expense line.
type Gasto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro    string          `gorm:"not null;index"`
	Fecha     time.Time       `gorm:"not null"`
	Concepto  string          `gorm:"not null"`
	Categoria string          `gorm:"not null;default:'general'"`
	Importe   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Gasto) TableName() string { return "gastos" }
