package infra

import (
	"fmt"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for every aggregate.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Compra{},
		&model.CursoRealizado{},
		&model.ReglaOportunidad{},
		&model.Oportunidad{},
		&model.HistorialOportunidad{},
		&model.Producto{},
		&model.PrecioEspecial{},
		&model.Ticket{},
		&model.TicketItem{},
		&model.Cierre{},
		&model.NotaCredito{},
		&model.NotaCreditoItem{},
		&model.Bono{},
		&model.Gasto{},
		&model.Actividad{},
		&model.AsistenteActividad{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
