package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles of console operators, in ascending privilege.
const (
	RolInstructor    = "instructor"
	RolEncargado     = "encargado"
	RolAdministrador = "administrador"
)

// Usuario is a console operator.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Centro       string    `gorm:"not null;index;uniqueIndex:idx_usuario_centro_username"`
	Username     string    `gorm:"not null;uniqueIndex:idx_usuario_centro_username"`
	PasswordHash string    `gorm:"not null"`
	Nombre       string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(20);not null;default:'instructor'"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
