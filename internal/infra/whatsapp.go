package infra

// whatsapp.go — builds wa.me deep links for the outbound contact channel.
// The link is handed back to the UI, which opens it in the messaging app;
// no API call is made from the backend.

import (
	"net/url"
	"strings"
)

// NormalizarTelefono strips every non-digit character and prefixes the
// country code when it is not already present.
func NormalizarTelefono(telefono, codigoPais string) string {
	var b strings.Builder
	for _, r := range telefono {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, codigoPais) {
		digits = codigoPais + digits
	}
	return digits
}

// EnlaceWhatsApp returns the https://wa.me deep link for a phone and a
// pre-filled message. Returns "" when the phone has no digits.
func EnlaceWhatsApp(telefono, codigoPais, mensaje string) string {
	digits := NormalizarTelefono(telefono, codigoPais)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(mensaje)
}
