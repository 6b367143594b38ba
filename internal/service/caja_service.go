package service

import (
	"context"
	"encoding/json"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService closes the register: it aggregates the open ticket set into an
// immutable Cierre and archives those tickets, atomically.
type CajaService struct {
	tickets repository.TicketRepository
	cierres repository.CierreRepository
}

func NewCajaService(tickets repository.TicketRepository, cierres repository.CierreRepository) *CajaService {
	return &CajaService{tickets: tickets, cierres: cierres}
}

// CerrarCaja snapshots every open ticket (CierreID null) into a Cierre and
// assigns them to it in one transaction — afterwards the open set is empty.
// Closing with no open tickets is valid and records a zero cierre.
func (s *CajaService) CerrarCaja(ctx context.Context, centro, cajero string) (*model.Cierre, error) {
	if cajero == "" {
		return nil, ErrValidacion
	}
	abiertos, err := s.tickets.ListAbiertos(ctx, centro)
	if err != nil {
		return nil, err
	}

	totalFacturado := decimal.Zero
	totalEfectivo := decimal.Zero
	for _, t := range abiertos {
		totalFacturado = totalFacturado.Add(t.Total)
		if t.MetodoPago == model.PagoEfectivo {
			totalEfectivo = totalEfectivo.Add(t.Total)
		}
	}

	// Deep copy: later returns rewrite ticket rows, the snapshot stays as-is.
	snapshot, err := json.Marshal(abiertos)
	if err != nil {
		return nil, err
	}

	cierre := &model.Cierre{
		Centro:         centro,
		Cajero:         cajero,
		NumTickets:     len(abiertos),
		TotalFacturado: totalFacturado,
		TotalEfectivo:  totalEfectivo,
		TotalOtros:     totalFacturado.Sub(totalEfectivo),
		TicketsJSON:    snapshot,
	}

	ids := make([]uuid.UUID, len(abiertos))
	for i, t := range abiertos {
		ids[i] = t.ID
	}

	err = runTx(s.tickets.DB(), func(tx *gorm.DB) error {
		if err := s.cierres.CreateTx(tx, cierre); err != nil {
			return err
		}
		return s.tickets.AsignarCierreTx(tx, centro, ids, cierre.ID)
	})
	if err != nil {
		return nil, err
	}
	return cierre, nil
}

func (s *CajaService) ListarCierres(ctx context.Context, centro string) ([]model.Cierre, error) {
	return s.cierres.List(ctx, centro)
}

func (s *CajaService) BuscarCierre(ctx context.Context, centro string, id uuid.UUID) (*model.Cierre, error) {
	return s.cierres.FindByID(ctx, centro, id)
}
