package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReglaRepository interface {
	Create(ctx context.Context, r *model.ReglaOportunidad) error
	List(ctx context.Context, centro string) ([]model.ReglaOportunidad, error)
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.ReglaOportunidad, error)
	Update(ctx context.Context, r *model.ReglaOportunidad) error
	Delete(ctx context.Context, centro string, id uuid.UUID) error
}

type reglaRepo struct{ db *gorm.DB }

func NewReglaRepository(db *gorm.DB) ReglaRepository { return &reglaRepo{db: db} }

func (r *reglaRepo) Create(ctx context.Context, regla *model.ReglaOportunidad) error {
	return r.db.WithContext(ctx).Create(regla).Error
}

func (r *reglaRepo) List(ctx context.Context, centro string) ([]model.ReglaOportunidad, error) {
	var reglas []model.ReglaOportunidad
	err := r.db.WithContext(ctx).Where("centro = ?", centro).Order("created_at ASC").Find(&reglas).Error
	return reglas, err
}

func (r *reglaRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.ReglaOportunidad, error) {
	var regla model.ReglaOportunidad
	err := r.db.WithContext(ctx).Where("centro = ?", centro).First(&regla, "id = ?", id).Error
	return &regla, err
}

func (r *reglaRepo) Update(ctx context.Context, regla *model.ReglaOportunidad) error {
	return r.db.WithContext(ctx).Save(regla).Error
}

func (r *reglaRepo) Delete(ctx context.Context, centro string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("centro = ?", centro).Delete(&model.ReglaOportunidad{}, "id = ?", id).Error
}
