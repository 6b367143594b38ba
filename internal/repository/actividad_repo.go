package repository

import (
	"context"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActividadRepository interface {
	Create(ctx context.Context, a *model.Actividad) error
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Actividad, error)
	ListEntreFechas(ctx context.Context, centro string, desde, hasta time.Time) ([]model.Actividad, error)
	Update(ctx context.Context, a *model.Actividad) error
	Delete(ctx context.Context, centro string, id uuid.UUID) error
	AddAsistente(ctx context.Context, as *model.AsistenteActividad) error
	// Centros lists the distinct centros with activities — the reminder cron's
	// iteration set.
	Centros(ctx context.Context) ([]string, error)
	DB() *gorm.DB
}

type actividadRepo struct{ db *gorm.DB }

func NewActividadRepository(db *gorm.DB) ActividadRepository { return &actividadRepo{db: db} }

func (r *actividadRepo) DB() *gorm.DB { return r.db }

func (r *actividadRepo) Create(ctx context.Context, a *model.Actividad) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *actividadRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Actividad, error) {
	var a model.Actividad
	err := r.db.WithContext(ctx).
		Preload("Asistentes.Cliente").
		Where("centro = ?", centro).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *actividadRepo) ListEntreFechas(ctx context.Context, centro string, desde, hasta time.Time) ([]model.Actividad, error) {
	var actividades []model.Actividad
	err := r.db.WithContext(ctx).
		Preload("Asistentes.Cliente").
		Where("centro = ? AND fecha >= ? AND fecha < ?", centro, desde, hasta).
		Order("fecha ASC, hora ASC").
		Find(&actividades).Error
	return actividades, err
}

func (r *actividadRepo) Update(ctx context.Context, a *model.Actividad) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *actividadRepo) Delete(ctx context.Context, centro string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("actividad_id = ?", id).Delete(&model.AsistenteActividad{}).Error; err != nil {
			return err
		}
		return tx.Where("centro = ?", centro).Delete(&model.Actividad{}, "id = ?", id).Error
	})
}

func (r *actividadRepo) AddAsistente(ctx context.Context, as *model.AsistenteActividad) error {
	return r.db.WithContext(ctx).Create(as).Error
}

func (r *actividadRepo) Centros(ctx context.Context) ([]string, error) {
	var centros []string
	err := r.db.WithContext(ctx).Model(&model.Actividad{}).
		Distinct("centro").Pluck("centro", &centros).Error
	return centros, err
}
