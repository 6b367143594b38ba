package service

import (
	"context"
	"strings"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoService manages the catalog and per-client special prices.
type ProductoService struct {
	productos repository.ProductoRepository
	clientes  repository.ClienteRepository
}

func NewProductoService(productos repository.ProductoRepository, clientes repository.ClienteRepository) *ProductoService {
	return &ProductoService{productos: productos, clientes: clientes}
}

func (s *ProductoService) Crear(ctx context.Context, centro, nombre, categoria string, precio decimal.Decimal) (*model.Producto, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" || precio.IsNegative() {
		return nil, ErrValidacion
	}
	p := &model.Producto{
		Centro:    centro,
		Nombre:    nombre,
		Categoria: categoria,
		Precio:    precio,
		Activo:    true,
	}
	if err := s.productos.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductoService) Listar(ctx context.Context, centro string, soloActivos bool) ([]model.Producto, error) {
	return s.productos.List(ctx, centro, soloActivos)
}

func (s *ProductoService) Actualizar(ctx context.Context, centro string, id uuid.UUID, nombre, categoria string, precio decimal.Decimal) (*model.Producto, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" || precio.IsNegative() {
		return nil, ErrValidacion
	}
	p, err := s.productos.FindByID(ctx, centro, id)
	if err != nil {
		return nil, err
	}
	p.Nombre = nombre
	p.Categoria = categoria
	p.Precio = precio
	if err := s.productos.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductoService) Desactivar(ctx context.Context, centro string, id uuid.UUID) error {
	if _, err := s.productos.FindByID(ctx, centro, id); err != nil {
		return err
	}
	return s.productos.Desactivar(ctx, centro, id)
}

// FijarPrecioEspecial sets a per-client override: either an absolute price or
// a percentage discount, not both.
func (s *ProductoService) FijarPrecioEspecial(ctx context.Context, centro string, productoID, clienteID uuid.UUID, precioFijo, descuentoPct *decimal.Decimal) (*model.PrecioEspecial, error) {
	if (precioFijo == nil) == (descuentoPct == nil) {
		return nil, ErrValidacion
	}
	if precioFijo != nil && precioFijo.IsNegative() {
		return nil, ErrValidacion
	}
	if descuentoPct != nil && (descuentoPct.IsNegative() || descuentoPct.GreaterThan(cien)) {
		return nil, ErrValidacion
	}
	if _, err := s.productos.FindByID(ctx, centro, productoID); err != nil {
		return nil, err
	}
	if _, err := s.clientes.FindByID(ctx, centro, clienteID); err != nil {
		return nil, err
	}
	pe := &model.PrecioEspecial{
		ProductoID:   productoID,
		ClienteID:    clienteID,
		PrecioFijo:   precioFijo,
		DescuentoPct: descuentoPct,
	}
	if err := s.productos.UpsertPrecioEspecial(ctx, pe); err != nil {
		return nil, err
	}
	return pe, nil
}
