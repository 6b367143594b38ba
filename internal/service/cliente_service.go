package service

import (
	"context"
	"strings"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
)

// ClienteService is the CRM: clients, their purchase history and their
// completed courses.
type ClienteService struct {
	clientes repository.ClienteRepository
	now      func() time.Time
}

func NewClienteService(clientes repository.ClienteRepository) *ClienteService {
	return &ClienteService{clientes: clientes, now: time.Now}
}

func (s *ClienteService) Crear(ctx context.Context, centro, nombre string, telefono, email *string) (*model.Cliente, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, ErrValidacion
	}
	c := &model.Cliente{
		Centro:   centro,
		Nombre:   nombre,
		Telefono: telefono,
		Email:    email,
	}
	if err := s.clientes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClienteService) Listar(ctx context.Context, centro string) ([]model.Cliente, error) {
	return s.clientes.List(ctx, centro)
}

func (s *ClienteService) Buscar(ctx context.Context, centro string, id uuid.UUID) (*model.Cliente, error) {
	return s.clientes.FindByID(ctx, centro, id)
}

func (s *ClienteService) Actualizar(ctx context.Context, centro string, id uuid.UUID, nombre string, telefono, email *string) (*model.Cliente, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, ErrValidacion
	}
	c, err := s.clientes.FindByID(ctx, centro, id)
	if err != nil {
		return nil, err
	}
	c.Nombre = nombre
	c.Telefono = telefono
	c.Email = email
	if err := s.clientes.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClienteService) Eliminar(ctx context.Context, centro string, id uuid.UUID) error {
	if _, err := s.clientes.FindByID(ctx, centro, id); err != nil {
		return err
	}
	return s.clientes.Delete(ctx, centro, id)
}

// RegistrarCurso appends a completed course to a client's history, feeding
// the opportunity engine. An empty course name or a future date is rejected.
func (s *ClienteService) RegistrarCurso(ctx context.Context, centro string, clienteID uuid.UUID, curso string, fecha time.Time) (*model.CursoRealizado, error) {
	curso = strings.TrimSpace(curso)
	if curso == "" || fecha.After(s.now()) {
		return nil, ErrValidacion
	}
	if _, err := s.clientes.FindByID(ctx, centro, clienteID); err != nil {
		return nil, err
	}
	cr := &model.CursoRealizado{
		ClienteID: clienteID,
		Curso:     curso,
		Fecha:     fecha,
	}
	if err := s.clientes.AddCurso(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}
