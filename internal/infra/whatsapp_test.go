package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarTelefono(t *testing.T) {
	assert.Equal(t, "34600123456", NormalizarTelefono("600 123 456", "34"))
	assert.Equal(t, "34600123456", NormalizarTelefono("600-123-456", "34"))
	assert.Equal(t, "34600123456", NormalizarTelefono("+34 600 123 456", "34"))
	// Ya lleva el prefijo: no se duplica.
	assert.Equal(t, "34600123456", NormalizarTelefono("34600123456", "34"))
	assert.Equal(t, "", NormalizarTelefono("sin número", "34"))
}

func TestEnlaceWhatsApp(t *testing.T) {
	link := EnlaceWhatsApp("600 123 456", "34", "Hola Ana, ¿qué tal?")
	assert.Equal(t, "https://wa.me/34600123456?text=Hola+Ana%2C+%C2%BFqu%C3%A9+tal%3F", link)

	assert.Equal(t, "", EnlaceWhatsApp("---", "34", "Hola"))
}
