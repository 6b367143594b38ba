package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados of an opportunity's sales-contact lifecycle.
const (
	EstadoPendiente  = "pendiente"
	EstadoContactado = "contactado"
	EstadoVendido    = "vendido"
	EstadoDescartado = "descartado"
)

// ClaveOportunidad is the composite identity of an opportunity within a
// centro. All lookups, updates and deletions go through this triple; there
// is no surrogate id on the engine API.
type ClaveOportunidad struct {
	ClienteNombre string `json:"cliente"`
	Curso         string `json:"curso"`
	Recomendacion string `json:"recomendacion"`
}

// Oportunidad is a persisted upsell lead. Its identity within a centro is the
// composite (ClienteNombre, Curso, Recomendacion) — candidates derived from
// trigger rules are never inserted while a row with the same triple exists.
type Oportunidad struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro        string    `gorm:"not null;uniqueIndex:idx_oportunidad_clave"`
	ClienteNombre string    `gorm:"not null;uniqueIndex:idx_oportunidad_clave"`
	Curso         string    `gorm:"not null;uniqueIndex:idx_oportunidad_clave"`
	Recomendacion string    `gorm:"not null;uniqueIndex:idx_oportunidad_clave"`
	// FechaCurso is the completion date of the base course that produced the lead.
	FechaCurso time.Time `gorm:"not null"`
	// Dias is the elapsed-day count frozen at materialization time. Read paths
	// recompute the current value from FechaCurso.
	Dias                int    `gorm:"not null"`
	Mensaje             string `gorm:"not null"`
	Estado              string `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Comentarios         string
	FechaUltimoContacto *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Historial []HistorialOportunidad `gorm:"foreignKey:OportunidadID"`
}

func (Oportunidad) TableName() string { return "oportunidades" }

// Clave returns the identity triple of an opportunity.
func (o *Oportunidad) Clave() ClaveOportunidad {
	return ClaveOportunidad{
		ClienteNombre: o.ClienteNombre,
		Curso:         o.Curso,
		Recomendacion: o.Recomendacion,
	}
}

// HistorialOportunidad is an append-only log entry on an opportunity.
// Entries are never modified or removed except by deleting the opportunity.
type HistorialOportunidad struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OportunidadID uuid.UUID `gorm:"type:uuid;not null;index"`
	Accion        string    `gorm:"not null"`
	Fecha         time.Time `gorm:"not null"`
	Comentario    string
}

func (HistorialOportunidad) TableName() string { return "historial_oportunidades" }
