package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMensajeSustituyeCadaMarcadorUnaVez(t *testing.T) {
	out := RenderMensaje("Hola {nombre}, tu {actividad} es a las {hora}", ValoresMensaje{
		Nombre:    "Ana",
		Actividad: "inmersión",
		Hora:      "09:30",
	})
	assert.Equal(t, "Hola Ana, tu inmersión es a las 09:30", out)

	// Solo la primera aparición se sustituye; la segunda queda literal.
	out = RenderMensaje("{nombre} y {nombre}", ValoresMensaje{Nombre: "Ana"})
	assert.Equal(t, "Ana y {nombre}", out)
}

func TestRenderMensajeMarcadoresAusentes(t *testing.T) {
	out := RenderMensaje("Sin marcadores", ValoresMensaje{Nombre: "Ana"})
	assert.Equal(t, "Sin marcadores", out)

	// Valores vacíos borran el marcador.
	out = RenderMensaje("Hola {nombre}", ValoresMensaje{})
	assert.Equal(t, "Hola ", out)
}
