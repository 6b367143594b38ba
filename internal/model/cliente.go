package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a CRM record for one diver. Nombre is unique within a centro
// and is the key the opportunity engine uses to reference the client.
type Cliente struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro   string    `gorm:"not null;index;uniqueIndex:idx_cliente_centro_nombre"`
	Nombre   string    `gorm:"not null;uniqueIndex:idx_cliente_centro_nombre"`
	Telefono *string
	Email    *string
	// Puntos is the loyalty balance: -100 per canje, +floor(total*0.20) per cobro.
	Puntos    int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Compras []Compra         `gorm:"foreignKey:ClienteID"`
	Cursos  []CursoRealizado `gorm:"foreignKey:ClienteID"`
}

func (Cliente) TableName() string { return "clientes" }

// Compra is one purchase-history line, appended at cobro time (one per cart line).
type Compra struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha     time.Time       `gorm:"not null"`
	Producto  string          `gorm:"not null"`
	Importe   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (Compra) TableName() string { return "compras" }

// CursoRealizado records a completed course for a client. Rows are appended by
// the activities flow (or directly from the CRM) and feed the opportunity engine.
type CursoRealizado struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Curso     string    `gorm:"not null"`
	Fecha     time.Time `gorm:"not null"`
}

func (CursoRealizado) TableName() string { return "cursos_realizados" }
