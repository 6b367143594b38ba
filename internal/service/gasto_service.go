package service

import (
	"context"
	"strings"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GastoService tracks business expenses, per month.
type GastoService struct {
	gastos repository.GastoRepository
}

func NewGastoService(gastos repository.GastoRepository) *GastoService {
	return &GastoService{gastos: gastos}
}

func (s *GastoService) Crear(ctx context.Context, centro, concepto, categoria string, importe decimal.Decimal, fecha time.Time) (*model.Gasto, error) {
	concepto = strings.TrimSpace(concepto)
	if concepto == "" || !importe.IsPositive() {
		return nil, ErrValidacion
	}
	if categoria == "" {
		categoria = "general"
	}
	g := &model.Gasto{
		Centro:    centro,
		Fecha:     fecha,
		Concepto:  concepto,
		Categoria: categoria,
		Importe:   importe,
	}
	if err := s.gastos.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Listar filters by month when mes ("YYYY-MM") is given.
func (s *GastoService) Listar(ctx context.Context, centro, mes string) ([]model.Gasto, error) {
	return s.gastos.List(ctx, centro, mes)
}

func (s *GastoService) Actualizar(ctx context.Context, centro string, id uuid.UUID, concepto, categoria string, importe decimal.Decimal, fecha time.Time) (*model.Gasto, error) {
	concepto = strings.TrimSpace(concepto)
	if concepto == "" || !importe.IsPositive() {
		return nil, ErrValidacion
	}
	g, err := s.gastos.FindByID(ctx, centro, id)
	if err != nil {
		return nil, err
	}
	g.Concepto = concepto
	if categoria != "" {
		g.Categoria = categoria
	}
	g.Importe = importe
	g.Fecha = fecha
	if err := s.gastos.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GastoService) Eliminar(ctx context.Context, centro string, id uuid.UUID) error {
	if _, err := s.gastos.FindByID(ctx, centro, id); err != nil {
		return err
	}
	return s.gastos.Delete(ctx, centro, id)
}

func (s *GastoService) TotalMes(ctx context.Context, centro, mes string) (decimal.Decimal, error) {
	return s.gastos.TotalMes(ctx, centro, mes)
}
