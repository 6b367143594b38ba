package service

import (
	"context"
	"testing"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketConLineas(t *testing.T, repo *stubTicketRepo, items ...model.TicketItem) *model.Ticket {
	t.Helper()
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PrecioUnitario.
			Mul(decimal.NewFromInt(int64(item.Cantidad))).
			Mul(cien.Sub(item.DescuentoPct)).Div(cien))
	}
	ticket := &model.Ticket{
		Centro:     "c1",
		Numero:     1,
		Cajero:     "cajero1",
		MetodoPago: model.PagoEfectivo,
		Total:      total,
		Items:      items,
	}
	require.NoError(t, repo.CreateTx(nil, ticket))
	return ticket
}

func TestDevolucionImporteIgnoraElDescuentoDeLinea(t *testing.T) {
	tickets := newStubTicketRepo()
	notas := &stubNotaCreditoRepo{}
	svc := NewDevolucionService(tickets, notas)

	// 2 × 50 con 20% de descuento: el ticket facturó 80.
	ticket := ticketConLineas(t, tickets, model.TicketItem{
		ProductoRef:    "p1",
		Nombre:         "Inmersión",
		Cantidad:       2,
		PrecioUnitario: decimal.NewFromInt(50),
		DescuentoPct:   decimal.NewFromInt(20),
	})

	nota, err := svc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"p1": 1})
	require.NoError(t, err)

	// El abono es al precio de línea sin descuento: 50, no 40.
	require.Len(t, nota.Items, 1)
	assert.True(t, nota.Total.Equal(decimal.NewFromInt(50)))

	// El total reescrito sí respeta el descuento: 1 × 50 × 0.80 = 40.
	assert.True(t, ticket.Total.Equal(decimal.NewFromInt(40)))
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, 1, ticket.Items[0].Cantidad)
}

func TestDevolucionLineaAgotadaDesaparece(t *testing.T) {
	tickets := newStubTicketRepo()
	svc := NewDevolucionService(tickets, &stubNotaCreditoRepo{})

	ticket := ticketConLineas(t, tickets,
		model.TicketItem{ProductoRef: "p1", Nombre: "Inmersión", Cantidad: 1, PrecioUnitario: decimal.NewFromInt(45), DescuentoPct: decimal.Zero},
		model.TicketItem{ProductoRef: "p2", Nombre: "Alquiler", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(10), DescuentoPct: decimal.Zero},
	)

	_, err := svc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"p1": 1})
	require.NoError(t, err)

	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "p2", ticket.Items[0].ProductoRef)
	assert.True(t, ticket.Total.Equal(decimal.NewFromInt(20)))
}

func TestDevolucionCantidadesNegativasSeIgnoran(t *testing.T) {
	tickets := newStubTicketRepo()
	svc := NewDevolucionService(tickets, &stubNotaCreditoRepo{})

	ticket := ticketConLineas(t, tickets,
		model.TicketItem{ProductoRef: "p1", Nombre: "Inmersión", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(45), DescuentoPct: decimal.Zero},
		model.TicketItem{ProductoRef: "p2", Nombre: "Alquiler", Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10), DescuentoPct: decimal.Zero},
	)

	nota, err := svc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"p1": 1, "p2": -5})
	require.NoError(t, err)
	require.Len(t, nota.Items, 1)
	assert.Equal(t, "p1", nota.Items[0].ProductoRef)
	// p2 intacto.
	require.Len(t, ticket.Items, 2)
}

func TestDevolucionInvalida(t *testing.T) {
	tickets := newStubTicketRepo()
	svc := NewDevolucionService(tickets, &stubNotaCreditoRepo{})

	ticket := ticketConLineas(t, tickets, model.TicketItem{
		ProductoRef: "p1", Nombre: "Inmersión", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(45), DescuentoPct: decimal.Zero,
	})

	// Más unidades de las cobradas.
	_, err := svc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"p1": 3})
	assert.ErrorIs(t, err, ErrValidacion)

	// Referencia desconocida.
	_, err = svc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"px": 1})
	assert.ErrorIs(t, err, ErrValidacion)

	// Nada que devolver.
	_, err = svc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"p1": 0})
	assert.ErrorIs(t, err, ErrValidacion)

	// El ticket no cambió en ninguno de los intentos fallidos.
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, 2, ticket.Items[0].Cantidad)
}

func TestDevolucionTotalDejaElTicketEnCero(t *testing.T) {
	tickets := newStubTicketRepo()
	notas := &stubNotaCreditoRepo{}
	svc := NewDevolucionService(tickets, notas)

	ticket := ticketConLineas(t, tickets, model.TicketItem{
		ProductoRef: "p1", Nombre: "Inmersión", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(45), DescuentoPct: decimal.Zero,
	})

	nota, err := svc.ProcesarDevolucion(context.Background(), "c1", ticket.ID, map[string]int{"p1": 2})
	require.NoError(t, err)
	assert.True(t, nota.Total.Equal(decimal.NewFromInt(90)))
	assert.Empty(t, ticket.Items)
	assert.True(t, ticket.Total.IsZero())

	listado, err := svc.ListarNotas(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, listado, 1)
}
