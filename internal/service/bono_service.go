package service

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
)

const (
	BonoInmersiones = "inmersiones"
	BonoCursos      = "cursos"
)

// BonoService manages prepaid credit bundles.
type BonoService struct {
	bonos    repository.BonoRepository
	clientes repository.ClienteRepository
}

func NewBonoService(bonos repository.BonoRepository, clientes repository.ClienteRepository) *BonoService {
	return &BonoService{bonos: bonos, clientes: clientes}
}

func (s *BonoService) Crear(ctx context.Context, centro string, clienteID uuid.UUID, tipo string, creditos int) (*model.Bono, error) {
	if (tipo != BonoInmersiones && tipo != BonoCursos) || creditos < 1 {
		return nil, ErrValidacion
	}
	if _, err := s.clientes.FindByID(ctx, centro, clienteID); err != nil {
		return nil, err
	}
	b := &model.Bono{
		Centro:          centro,
		ClienteID:       clienteID,
		Tipo:            tipo,
		CreditosTotales: creditos,
	}
	if err := s.bonos.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BonoService) Listar(ctx context.Context, centro string) ([]model.Bono, error) {
	return s.bonos.List(ctx, centro)
}

func (s *BonoService) ListarDeCliente(ctx context.Context, centro string, clienteID uuid.UUID) ([]model.Bono, error) {
	return s.bonos.ListByCliente(ctx, centro, clienteID)
}

// ConsumirCredito burns credits off a bundle. Consuming past the remaining
// balance fails with ErrValidacion and leaves the bundle untouched.
func (s *BonoService) ConsumirCredito(ctx context.Context, centro string, id uuid.UUID, cantidad int) (*model.Bono, error) {
	if cantidad < 1 {
		return nil, ErrValidacion
	}
	b, err := s.bonos.FindByID(ctx, centro, id)
	if err != nil {
		return nil, err
	}
	if b.CreditosUsados+cantidad > b.CreditosTotales {
		return nil, ErrValidacion
	}
	b.CreditosUsados += cantidad
	if err := s.bonos.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
