package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CierreRepository interface {
	CreateTx(tx *gorm.DB, c *model.Cierre) error
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Cierre, error)
	List(ctx context.Context, centro string) ([]model.Cierre, error)
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) CreateTx(tx *gorm.DB, c *model.Cierre) error {
	return tx.Create(c).Error
}

func (r *cierreRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Cierre, error) {
	var c model.Cierre
	err := r.db.WithContext(ctx).Where("centro = ?", centro).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cierreRepo) List(ctx context.Context, centro string) ([]model.Cierre, error) {
	var cierres []model.Cierre
	err := r.db.WithContext(ctx).Where("centro = ?", centro).Order("created_at DESC").Find(&cierres).Error
	return cierres, err
}
