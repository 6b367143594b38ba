package service

import "strings"

// Placeholder substitution for contact and reminder messages. Each known
// placeholder is replaced at most once: a template containing "{nombre}"
// twice keeps the second occurrence literal. This first-match-only semantic
// is load-bearing for message compatibility — do not switch to ReplaceAll
// or text/template.

// ValoresMensaje holds the substitution values for a message template.
type ValoresMensaje struct {
	Nombre    string
	Actividad string
	Hora      string
}

// RenderMensaje substitutes {nombre}, {actividad} and {hora} in plantilla.
func RenderMensaje(plantilla string, v ValoresMensaje) string {
	s := strings.Replace(plantilla, "{nombre}", v.Nombre, 1)
	s = strings.Replace(s, "{actividad}", v.Actividad, 1)
	s = strings.Replace(s, "{hora}", v.Hora, 1)
	return s
}
