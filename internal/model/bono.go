package model

import (
	"time"

	"github.com/google/uuid"
)

// Bono is a prepaid bundle of usage credits (dives or courses) consumed
// over time. CreditosUsados never exceeds CreditosTotales.
type Bono struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro          string    `gorm:"not null;index"`
	ClienteID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo            string    `gorm:"not null"` // "inmersiones" | "cursos"
	CreditosTotales int       `gorm:"not null"`
	CreditosUsados  int       `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Bono) TableName() string { return "bonos" }
