package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"gorm.io/gorm"
)

type OportunidadRepository interface {
	// List returns the persisted set in insertion order — the merge contract
	// requires persisted entries first, stable.
	List(ctx context.Context, centro string) ([]model.Oportunidad, error)
	FindByClave(ctx context.Context, centro string, clave model.ClaveOportunidad) (*model.Oportunidad, error)
	Create(ctx context.Context, o *model.Oportunidad) error
	Update(ctx context.Context, o *model.Oportunidad) error
	AppendHistorial(ctx context.Context, h *model.HistorialOportunidad) error
	DeleteByClave(ctx context.Context, centro string, clave model.ClaveOportunidad) error
}

type oportunidadRepo struct{ db *gorm.DB }

func NewOportunidadRepository(db *gorm.DB) OportunidadRepository { return &oportunidadRepo{db: db} }

func (r *oportunidadRepo) List(ctx context.Context, centro string) ([]model.Oportunidad, error) {
	var opps []model.Oportunidad
	err := r.db.WithContext(ctx).
		Preload("Historial", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") }).
		Where("centro = ?", centro).
		Order("created_at ASC").
		Find(&opps).Error
	return opps, err
}

func (r *oportunidadRepo) FindByClave(ctx context.Context, centro string, clave model.ClaveOportunidad) (*model.Oportunidad, error) {
	var o model.Oportunidad
	err := r.db.WithContext(ctx).
		Preload("Historial", func(db *gorm.DB) *gorm.DB { return db.Order("fecha ASC") }).
		Where("centro = ? AND cliente_nombre = ? AND curso = ? AND recomendacion = ?",
			centro, clave.ClienteNombre, clave.Curso, clave.Recomendacion).
		First(&o).Error
	return &o, err
}

func (r *oportunidadRepo) Create(ctx context.Context, o *model.Oportunidad) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *oportunidadRepo) Update(ctx context.Context, o *model.Oportunidad) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *oportunidadRepo) AppendHistorial(ctx context.Context, h *model.HistorialOportunidad) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *oportunidadRepo) DeleteByClave(ctx context.Context, centro string, clave model.ClaveOportunidad) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o model.Oportunidad
		if err := tx.Where("centro = ? AND cliente_nombre = ? AND curso = ? AND recomendacion = ?",
			centro, clave.ClienteNombre, clave.Curso, clave.Recomendacion).
			First(&o).Error; err != nil {
			return err
		}
		if err := tx.Where("oportunidad_id = ?", o.ID).Delete(&model.HistorialOportunidad{}).Error; err != nil {
			return err
		}
		return tx.Delete(&o).Error
	})
}
