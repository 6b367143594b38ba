package repository

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository interface {
	CreateTx(tx *gorm.DB, t *model.Ticket) error
	FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Ticket, error)
	// ListAbiertos returns tickets not yet archived into a cierre.
	ListAbiertos(ctx context.Context, centro string) ([]model.Ticket, error)
	List(ctx context.Context, centro string, fecha string) ([]model.Ticket, error)
	NextNumero(ctx context.Context, tx *gorm.DB, centro string) (int, error)
	// ReemplazarItemsTx rewrites a ticket's lines and total after a return.
	ReemplazarItemsTx(tx *gorm.DB, t *model.Ticket, items []model.TicketItem) error
	AsignarCierreTx(tx *gorm.DB, centro string, ticketIDs []uuid.UUID, cierreID uuid.UUID) error
	DB() *gorm.DB
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) DB() *gorm.DB { return r.db }

func (r *ticketRepo) CreateTx(tx *gorm.DB, t *model.Ticket) error {
	return tx.Create(t).Error
}

func (r *ticketRepo) FindByID(ctx context.Context, centro string, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("centro = ?", centro).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *ticketRepo) ListAbiertos(ctx context.Context, centro string) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("centro = ? AND cierre_id IS NULL", centro).
		Order("created_at ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) List(ctx context.Context, centro string, fecha string) ([]model.Ticket, error) {
	var tickets []model.Ticket
	q := r.db.WithContext(ctx).Preload("Items").Where("centro = ?", centro)
	if fecha != "" {
		q = q.Where("DATE(created_at) = ?", fecha)
	}
	err := q.Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) NextNumero(ctx context.Context, tx *gorm.DB, centro string) (int, error) {
	var num int
	err := tx.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(numero), 0) + 1 FROM tickets WHERE centro = ?", centro).
		Scan(&num).Error
	return num, err
}

func (r *ticketRepo) ReemplazarItemsTx(tx *gorm.DB, t *model.Ticket, items []model.TicketItem) error {
	if err := tx.Where("ticket_id = ?", t.ID).Delete(&model.TicketItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].TicketID = t.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	t.Items = items
	return tx.Model(&model.Ticket{}).Where("id = ?", t.ID).Update("total", t.Total).Error
}

func (r *ticketRepo) AsignarCierreTx(tx *gorm.DB, centro string, ticketIDs []uuid.UUID, cierreID uuid.UUID) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	return tx.Model(&model.Ticket{}).
		Where("centro = ? AND id IN ?", centro, ticketIDs).
		Update("cierre_id", cierreID).Error
}
