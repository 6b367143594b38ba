package service

import (
	"context"
	"testing"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCrearBonoValidaciones(t *testing.T) {
	bonos := newStubBonoRepo()
	clientes := newStubClienteRepo()
	svc := NewBonoService(bonos, clientes)

	cli := &model.Cliente{Centro: "c1", Nombre: "Ana"}
	require.NoError(t, clientes.Create(context.Background(), cli))

	_, err := svc.Crear(context.Background(), "c1", cli.ID, "viajes", 10)
	assert.ErrorIs(t, err, ErrValidacion)

	_, err = svc.Crear(context.Background(), "c1", cli.ID, BonoInmersiones, 0)
	assert.ErrorIs(t, err, ErrValidacion)

	_, err = svc.Crear(context.Background(), "c1", uuid.New(), BonoInmersiones, 10)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	b, err := svc.Crear(context.Background(), "c1", cli.ID, BonoInmersiones, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, b.CreditosTotales)
	assert.Equal(t, 0, b.CreditosUsados)
}

func TestConsumirCredito(t *testing.T) {
	bonos := newStubBonoRepo()
	clientes := newStubClienteRepo()
	svc := NewBonoService(bonos, clientes)

	cli := &model.Cliente{Centro: "c1", Nombre: "Ana"}
	require.NoError(t, clientes.Create(context.Background(), cli))
	b, err := svc.Crear(context.Background(), "c1", cli.ID, BonoCursos, 5)
	require.NoError(t, err)

	b, err = svc.ConsumirCredito(context.Background(), "c1", b.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, b.CreditosUsados)

	// Sobregiro rechazado sin tocar el saldo.
	_, err = svc.ConsumirCredito(context.Background(), "c1", b.ID, 3)
	assert.ErrorIs(t, err, ErrValidacion)
	assert.Equal(t, 3, b.CreditosUsados)

	_, err = svc.ConsumirCredito(context.Background(), "c1", b.ID, 0)
	assert.ErrorIs(t, err, ErrValidacion)

	b, err = svc.ConsumirCredito(context.Background(), "c1", b.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, b.CreditosUsados)
}
