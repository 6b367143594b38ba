package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BonoRepository interface {
	Create(ctx context.Context, b *model.Bono) error
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Bono, error)
	ListByCliente(ctx context.Context, centro string, clienteID uuid.UUID) ([]model.Bono, error)
	List(ctx context.Context, centro string) ([]model.Bono, error)
	Update(ctx context.Context, b *model.Bono) error
}

type bonoRepo struct{ db *gorm.DB }

func NewBonoRepository(db *gorm.DB) BonoRepository { return &bonoRepo{db: db} }

func (r *bonoRepo) Create(ctx context.Context, b *model.Bono) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bonoRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Bono, error) {
	var b model.Bono
	err := r.db.WithContext(ctx).Where("centro = ?", centro).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bonoRepo) ListByCliente(ctx context.Context, centro string, clienteID uuid.UUID) ([]model.Bono, error) {
	var bonos []model.Bono
	err := r.db.WithContext(ctx).
		Where("centro = ? AND cliente_id = ?", centro, clienteID).
		Order("created_at ASC").Find(&bonos).Error
	return bonos, err
}

func (r *bonoRepo) List(ctx context.Context, centro string) ([]model.Bono, error) {
	var bonos []model.Bono
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Where("centro = ?", centro).Order("created_at DESC").Find(&bonos).Error
	return bonos, err
}

func (r *bonoRepo) Update(ctx context.Context, b *model.Bono) error {
	return r.db.WithContext(ctx).Save(b).Error
}
