package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Gasto, error)
	List(ctx context.Context, centro string, mes string) ([]model.Gasto, error)
	Update(ctx context.Context, g *model.Gasto) error
	Delete(ctx context.Context, centro string, id uuid.UUID) error
	// TotalMes sums expenses for a "YYYY-MM" month.
	TotalMes(ctx context.Context, centro string, mes string) (decimal.Decimal, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).Where("centro = ?", centro).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *gastoRepo) List(ctx context.Context, centro string, mes string) ([]model.Gasto, error) {
	var gastos []model.Gasto
	q := r.db.WithContext(ctx).Where("centro = ?", centro)
	if mes != "" {
		q = q.Where("to_char(fecha, 'YYYY-MM') = ?", mes)
	}
	err := q.Order("fecha DESC").Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) Update(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gastoRepo) Delete(ctx context.Context, centro string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("centro = ?", centro).Delete(&model.Gasto{}, "id = ?", id).Error
}

func (r *gastoRepo) TotalMes(ctx context.Context, centro string, mes string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Where("centro = ? AND to_char(fecha, 'YYYY-MM') = ?", centro, mes).
		Select("COALESCE(SUM(importe), 0)").
		Scan(&total).Error
	return total, err
}
