package service

import (
	"testing"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productoDe(nombre string, precio float64) *model.Producto {
	return &model.Producto{
		ID:     uuid.New(),
		Centro: "c1",
		Nombre: nombre,
		Precio: decimal.NewFromFloat(precio),
		Activo: true,
	}
}

func TestCarritoAgregarProductoAcumulaCantidad(t *testing.T) {
	c := &Carrito{}
	p := productoDe("Inmersión guiada", 45)

	c.AgregarProducto(p, nil)
	c.AgregarProducto(p, nil)

	require.Len(t, c.Lineas, 1)
	assert.Equal(t, 2, c.Lineas[0].Cantidad)
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(90)))
}

func TestCarritoPrecioEspecialFijoGanaAlPorcentaje(t *testing.T) {
	p := productoDe("Curso Advanced", 300)
	fijo := decimal.NewFromInt(250)
	pct := decimal.NewFromInt(20)

	c := &Carrito{}
	c.AgregarProducto(p, &model.PrecioEspecial{PrecioFijo: &fijo, DescuentoPct: &pct})
	assert.True(t, c.Lineas[0].PrecioUnitario.Equal(fijo))

	c = &Carrito{}
	c.AgregarProducto(p, &model.PrecioEspecial{DescuentoPct: &pct})
	assert.True(t, c.Lineas[0].PrecioUnitario.Equal(decimal.NewFromInt(240)))
}

func TestCarritoLineaManualValidacion(t *testing.T) {
	c := &Carrito{}

	assert.ErrorIs(t, c.AgregarLineaManual("", decimal.NewFromInt(10), 1), ErrValidacion)
	assert.ErrorIs(t, c.AgregarLineaManual("Alquiler traje", decimal.Zero, 1), ErrValidacion)
	assert.ErrorIs(t, c.AgregarLineaManual("Alquiler traje", decimal.NewFromInt(10), 0), ErrValidacion)

	require.NoError(t, c.AgregarLineaManual("  Alquiler traje  ", decimal.NewFromInt(10), 2))
	require.Len(t, c.Lineas, 1)
	assert.Equal(t, "Alquiler traje", c.Lineas[0].Nombre)
}

func TestCarritoDescuentoLinea(t *testing.T) {
	c := &Carrito{}
	p := productoDe("Inmersión guiada", 100)
	c.AgregarProducto(p, nil)
	ref := c.Lineas[0].ProductoRef

	assert.ErrorIs(t, c.FijarDescuentoLinea(ref, decimal.NewFromInt(-1)), ErrValidacion)
	assert.ErrorIs(t, c.FijarDescuentoLinea(ref, decimal.NewFromInt(101)), ErrValidacion)
	assert.ErrorIs(t, c.FijarDescuentoLinea("no-existe", decimal.NewFromInt(10)), ErrValidacion)

	require.NoError(t, c.FijarDescuentoLinea(ref, decimal.NewFromInt(25)))
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(75)))
}

func TestCarritoTotalConCanje(t *testing.T) {
	c := &Carrito{}
	require.NoError(t, c.AgregarLineaManual("Curso", decimal.NewFromInt(100), 1))

	assert.True(t, c.Total().Equal(decimal.NewFromInt(100)))
	c.CanjeActivo = true
	assert.True(t, c.Total().Equal(decimal.NewFromInt(90)))
}

func TestPuntosGanadosRedondeaHaciaAbajo(t *testing.T) {
	assert.Equal(t, 18, PuntosGanados(decimal.NewFromInt(90)))
	assert.Equal(t, 19, PuntosGanados(decimal.NewFromFloat(99.99)))
	assert.Equal(t, 0, PuntosGanados(decimal.NewFromFloat(4.95)))
}
