package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Cliente, error)
	FindByNombre(ctx context.Context, centro, nombre string) (*model.Cliente, error)
	// ListConCursos returns every client with course history preloaded —
	// the opportunity engine's read path.
	ListConCursos(ctx context.Context, centro string) ([]model.Cliente, error)
	List(ctx context.Context, centro string) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, centro string, id uuid.UUID) error
	AddCurso(ctx context.Context, curso *model.CursoRealizado) error
	AddCursoTx(tx *gorm.DB, curso *model.CursoRealizado) error
	// SumarPuntosTx adjusts the loyalty balance inside a cobro/canje transaction.
	SumarPuntosTx(tx *gorm.DB, clienteID uuid.UUID, delta int) error
	AddCompraTx(tx *gorm.DB, compra *model.Compra) error
	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Compras").Preload("Cursos").
		Where("centro = ?", centro).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) FindByNombre(ctx context.Context, centro, nombre string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Cursos").
		Where("centro = ? AND nombre = ?", centro, nombre).First(&c).Error
	return &c, err
}

func (r *clienteRepo) ListConCursos(ctx context.Context, centro string) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Cursos").
		Where("centro = ?", centro).Order("nombre ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) List(ctx context.Context, centro string) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Where("centro = ?", centro).Order("nombre ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, centro string, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("centro = ?", centro).Delete(&model.Cliente{}, "id = ?", id).Error
}

func (r *clienteRepo) AddCurso(ctx context.Context, curso *model.CursoRealizado) error {
	return r.db.WithContext(ctx).Create(curso).Error
}

func (r *clienteRepo) AddCursoTx(tx *gorm.DB, curso *model.CursoRealizado) error {
	return tx.Create(curso).Error
}

func (r *clienteRepo) SumarPuntosTx(tx *gorm.DB, clienteID uuid.UUID, delta int) error {
	return tx.Model(&model.Cliente{}).
		Where("id = ?", clienteID).
		Update("puntos", gorm.Expr("puntos + ?", delta)).Error
}

func (r *clienteRepo) AddCompraTx(tx *gorm.DB, compra *model.Compra) error {
	return tx.Create(compra).Error
}
