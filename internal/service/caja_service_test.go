package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ticketAbierto(t *testing.T, repo *stubTicketRepo, metodo string, total int64) *model.Ticket {
	t.Helper()
	ticket := &model.Ticket{
		Centro:     "c1",
		Numero:     len(repo.tickets) + 1,
		Cajero:     "cajero1",
		MetodoPago: metodo,
		Total:      decimal.NewFromInt(total),
		Items: []model.TicketItem{{
			ProductoRef:    "manual-x",
			Nombre:         "Curso",
			Cantidad:       1,
			PrecioUnitario: decimal.NewFromInt(total),
			DescuentoPct:   decimal.Zero,
		}},
	}
	require.NoError(t, repo.CreateTx(nil, ticket))
	return ticket
}

func TestCerrarCajaAgregaYVaciaElConjuntoAbierto(t *testing.T) {
	tickets := newStubTicketRepo()
	cierres := &stubCierreRepo{}
	svc := NewCajaService(tickets, cierres)

	ticketAbierto(t, tickets, model.PagoEfectivo, 100)
	ticketAbierto(t, tickets, model.PagoTarjeta, 60)
	ticketAbierto(t, tickets, model.PagoBizum, 40)

	cierre, err := svc.CerrarCaja(context.Background(), "c1", "cajero1")
	require.NoError(t, err)

	assert.Equal(t, 3, cierre.NumTickets)
	assert.True(t, cierre.TotalFacturado.Equal(decimal.NewFromInt(200)))
	assert.True(t, cierre.TotalEfectivo.Equal(decimal.NewFromInt(100)))
	assert.True(t, cierre.TotalOtros.Equal(decimal.NewFromInt(100)))

	abiertos, err := tickets.ListAbiertos(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, abiertos)
}

func TestCerrarCajaSinTicketsEsValido(t *testing.T) {
	svc := NewCajaService(newStubTicketRepo(), &stubCierreRepo{})

	cierre, err := svc.CerrarCaja(context.Background(), "c1", "cajero1")
	require.NoError(t, err)
	assert.Equal(t, 0, cierre.NumTickets)
	assert.True(t, cierre.TotalFacturado.IsZero())
}

func TestCerrarCajaSinCajero(t *testing.T) {
	svc := NewCajaService(newStubTicketRepo(), &stubCierreRepo{})

	_, err := svc.CerrarCaja(context.Background(), "c1", "")
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestCerrarCajaSnapshotSobreviveAUnaDevolucion(t *testing.T) {
	tickets := newStubTicketRepo()
	cierres := &stubCierreRepo{}
	svc := NewCajaService(tickets, cierres)

	ticket := ticketAbierto(t, tickets, model.PagoEfectivo, 100)

	cierre, err := svc.CerrarCaja(context.Background(), "c1", "cajero1")
	require.NoError(t, err)

	// Devolución posterior: el ticket cambia, la copia del cierre no.
	devSvc := NewDevolucionService(tickets, &stubNotaCreditoRepo{})
	_, err = devSvc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"manual-x": 1})
	require.NoError(t, err)
	assert.True(t, ticket.Total.IsZero())

	var archivados []model.Ticket
	require.NoError(t, json.Unmarshal(cierre.TicketsJSON, &archivados))
	require.Len(t, archivados, 1)
	assert.True(t, archivados[0].Total.Equal(decimal.NewFromInt(100)))
	require.Len(t, archivados[0].Items, 1)
	assert.Equal(t, 1, archivados[0].Items[0].Cantidad)
}

func TestBuscarCierreDeOtroCentro(t *testing.T) {
	tickets := newStubTicketRepo()
	cierres := &stubCierreRepo{}
	svc := NewCajaService(tickets, cierres)

	cierre, err := svc.CerrarCaja(context.Background(), "c1", "cajero1")
	require.NoError(t, err)

	_, err = svc.BuscarCierre(context.Background(), "c2", cierre.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
