package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"gorm.io/gorm"
)

type NotaCreditoRepository interface {
	CreateTx(tx *gorm.DB, n *model.NotaCredito) error
	List(ctx context.Context, centro string) ([]model.NotaCredito, error)
}

type notaCreditoRepo struct{ db *gorm.DB }

func NewNotaCreditoRepository(db *gorm.DB) NotaCreditoRepository { return &notaCreditoRepo{db: db} }

func (r *notaCreditoRepo) CreateTx(tx *gorm.DB, n *model.NotaCredito) error {
	return tx.Create(n).Error
}

func (r *notaCreditoRepo) List(ctx context.Context, centro string) ([]model.NotaCredito, error) {
	var notas []model.NotaCredito
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("centro = ?", centro).Order("created_at DESC").Find(&notas).Error
	return notas, err
}
