package service

import (
	"context"
	"strings"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
)

// ReglaService manages the trigger rules the opportunity engine evaluates.
type ReglaService struct {
	reglas repository.ReglaRepository
}

func NewReglaService(reglas repository.ReglaRepository) *ReglaService {
	return &ReglaService{reglas: reglas}
}

func (s *ReglaService) validar(cursoBase, recomendacion, mensaje string, diasMinimos int) error {
	if strings.TrimSpace(cursoBase) == "" || strings.TrimSpace(recomendacion) == "" ||
		strings.TrimSpace(mensaje) == "" || diasMinimos < 0 {
		return ErrValidacion
	}
	return nil
}

func (s *ReglaService) Crear(ctx context.Context, centro, cursoBase string, diasMinimos int, recomendacion, mensaje string) (*model.ReglaOportunidad, error) {
	if err := s.validar(cursoBase, recomendacion, mensaje, diasMinimos); err != nil {
		return nil, err
	}
	r := &model.ReglaOportunidad{
		Centro:        centro,
		CursoBase:     strings.TrimSpace(cursoBase),
		DiasMinimos:   diasMinimos,
		Recomendacion: strings.TrimSpace(recomendacion),
		Mensaje:       mensaje,
	}
	if err := s.reglas.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReglaService) Listar(ctx context.Context, centro string) ([]model.ReglaOportunidad, error) {
	return s.reglas.List(ctx, centro)
}

func (s *ReglaService) Actualizar(ctx context.Context, centro string, id uuid.UUID, cursoBase string, diasMinimos int, recomendacion, mensaje string) (*model.ReglaOportunidad, error) {
	if err := s.validar(cursoBase, recomendacion, mensaje, diasMinimos); err != nil {
		return nil, err
	}
	r, err := s.reglas.FindByID(ctx, centro, id)
	if err != nil {
		return nil, err
	}
	r.CursoBase = strings.TrimSpace(cursoBase)
	r.DiasMinimos = diasMinimos
	r.Recomendacion = strings.TrimSpace(recomendacion)
	r.Mensaje = mensaje
	if err := s.reglas.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReglaService) Eliminar(ctx context.Context, centro string, id uuid.UUID) error {
	if _, err := s.reglas.FindByID(ctx, centro, id); err != nil {
		return err
	}
	return s.reglas.Delete(ctx, centro, id)
}
