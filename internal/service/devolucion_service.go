package service

import (
	"context"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DevolucionService processes returns against charged tickets. A return emits
// an immutable NotaCredito and rewrites the ticket's remaining lines in the
// same transaction.
type DevolucionService struct {
	tickets repository.TicketRepository
	notas   repository.NotaCreditoRepository
}

func NewDevolucionService(tickets repository.TicketRepository, notas repository.NotaCreditoRepository) *DevolucionService {
	return &DevolucionService{tickets: tickets, notas: notas}
}

// ProcesarDevolucion returns quantities per ProductoRef from a ticket.
// Negative quantities clamp to zero; returning zero units overall or more
// units than a line holds fails with ErrValidacion. The credit amount per
// line is PrecioUnitario × cantidad, deliberately ignoring the line's manual
// discount; the rewritten ticket total, by contrast, honors the discounts of
// the remaining lines. Lines reduced to zero disappear from the ticket.
func (s *DevolucionService) ProcesarDevolucion(ctx context.Context, centro string, ticketID uuid.UUID, cantidades map[string]int) (*model.NotaCredito, error) {
	t, err := s.tickets.FindByID(ctx, centro, ticketID)
	if err != nil {
		return nil, err
	}

	porRef := make(map[string]*model.TicketItem, len(t.Items))
	for i := range t.Items {
		porRef[t.Items[i].ProductoRef] = &t.Items[i]
	}

	nota := &model.NotaCredito{
		Centro:   centro,
		TicketID: t.ID,
		Total:    decimal.Zero,
	}
	devueltas := make(map[string]int, len(cantidades))
	for ref, cant := range cantidades {
		if cant < 0 {
			cant = 0
		}
		if cant == 0 {
			continue
		}
		item, ok := porRef[ref]
		if !ok || cant > item.Cantidad {
			return nil, ErrValidacion
		}
		importe := item.PrecioUnitario.Mul(decimal.NewFromInt(int64(cant)))
		nota.Items = append(nota.Items, model.NotaCreditoItem{
			ProductoRef: ref,
			Nombre:      item.Nombre,
			Cantidad:    cant,
			Importe:     importe,
		})
		nota.Total = nota.Total.Add(importe)
		devueltas[ref] = cant
	}
	if len(nota.Items) == 0 {
		return nil, ErrValidacion
	}

	var restantes []model.TicketItem
	nuevoTotal := decimal.Zero
	for _, item := range t.Items {
		item.Cantidad -= devueltas[item.ProductoRef]
		if item.Cantidad == 0 {
			continue
		}
		item.ID = uuid.Nil
		item.TicketID = uuid.Nil
		subtotal := item.PrecioUnitario.
			Mul(decimal.NewFromInt(int64(item.Cantidad))).
			Mul(cien.Sub(item.DescuentoPct)).Div(cien)
		nuevoTotal = nuevoTotal.Add(subtotal)
		restantes = append(restantes, item)
	}

	err = runTx(s.tickets.DB(), func(tx *gorm.DB) error {
		if err := s.notas.CreateTx(tx, nota); err != nil {
			return err
		}
		t.Total = nuevoTotal
		return s.tickets.ReemplazarItemsTx(tx, t, restantes)
	})
	if err != nil {
		return nil, err
	}
	return nota, nil
}

func (s *DevolucionService) ListarNotas(ctx context.Context, centro string) ([]model.NotaCredito, error) {
	return s.notas.List(ctx, centro)
}
