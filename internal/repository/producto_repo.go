package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, centro string, soloActivos bool) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, centro string, id uuid.UUID) error
	// FindPrecioEspecial returns the per-client override for a product, if any.
	FindPrecioEspecial(ctx context.Context, productoID, clienteID uuid.UUID) (*model.PrecioEspecial, error)
	UpsertPrecioEspecial(ctx context.Context, pe *model.PrecioEspecial) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("centro = ?", centro).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, centro string, soloActivos bool) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).Where("centro = ?", centro)
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, centro string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("centro = ? AND id = ?", centro, id).
		Update("activo", false).Error
}

func (r *productoRepo) FindPrecioEspecial(ctx context.Context, productoID, clienteID uuid.UUID) (*model.PrecioEspecial, error) {
	var pe model.PrecioEspecial
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND cliente_id = ?", productoID, clienteID).
		First(&pe).Error
	return &pe, err
}

func (r *productoRepo) UpsertPrecioEspecial(ctx context.Context, pe *model.PrecioEspecial) error {
	existing := &model.PrecioEspecial{}
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND cliente_id = ?", pe.ProductoID, pe.ClienteID).
		First(existing).Error
	if err == nil {
		pe.ID = existing.ID
		return r.db.WithContext(ctx).Save(pe).Error
	}
	return r.db.WithContext(ctx).Create(pe).Error
}
