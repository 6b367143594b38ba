package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog entry (course, dive, rental, merchandise).
type Producto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro    string          `gorm:"not null;index;uniqueIndex:idx_producto_centro_nombre"`
	Nombre    string          `gorm:"not null;uniqueIndex:idx_producto_centro_nombre"`
	Categoria string          `gorm:"not null;default:'general'"`
	Precio    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	PreciosEspeciales []PrecioEspecial `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }

// PrecioEspecial overrides a product's price for one client. An absolute
// PrecioFijo wins over DescuentoPct; both unset means the row is inert.
// Special pricing is orthogonal to the per-line manual discount applied at
// the cashier — both can stack on the same line.
type PrecioEspecial struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_precio_especial"`
	ClienteID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_precio_especial"`
	PrecioFijo   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	DescuentoPct *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CreatedAt    time.Time
}

func (PrecioEspecial) TableName() string { return "precios_especiales" }
