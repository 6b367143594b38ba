package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos of scheduled activities.
const (
	TipoCurso     = "curso"
	TipoInmersion = "inmersion"
	TipoSalida    = "salida"
)

// Actividad is one scheduled instructor activity (course session, guided
// dive, boat trip). Completing a "curso" activity appends a CursoRealizado
// row to every attendee, which feeds the opportunity engine.
type Actividad struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro     string    `gorm:"not null;index"`
	Nombre     string    `gorm:"not null"`
	Tipo       string    `gorm:"not null;default:'inmersion'"` // "curso" | "inmersion" | "salida"
	Fecha      time.Time `gorm:"not null;index"`
	Hora       string    `gorm:"not null"` // "HH:MM"
	Instructor string    `gorm:"not null"`
	Completada bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Asistentes []AsistenteActividad `gorm:"foreignKey:ActividadID"`
}

func (Actividad) TableName() string { return "actividades" }

// AsistenteActividad links a client to an activity.
type AsistenteActividad struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActividadID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClienteID   uuid.UUID `gorm:"type:uuid;not null;index"`

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (AsistenteActividad) TableName() string { return "asistentes_actividad" }
