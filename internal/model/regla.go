package model

import (
	"time"

	"github.com/google/uuid"
)

// ReglaOportunidad is a user-configured trigger: clients who completed
// CursoBase at least DiasMinimos days ago become candidates for Recomendacion.
// The list is unordered and duplicates are permitted — two rules with the same
// CursoBase but different Recomendacion generate distinct opportunities.
type ReglaOportunidad struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro        string    `gorm:"not null;index"`
	CursoBase     string    `gorm:"not null"`
	DiasMinimos   int       `gorm:"not null"`
	Recomendacion string    `gorm:"not null"`
	Mensaje       string    `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ReglaOportunidad) TableName() string { return "reglas_oportunidad" }
