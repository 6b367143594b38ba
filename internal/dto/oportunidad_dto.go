package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ClaveOportunidad identifies an opportunity by its composite key; every
// mutation carries it in the body.
type ClaveOportunidadRequest struct {
	Cliente       string `json:"cliente"       validate:"required,min=1"`
	Curso         string `json:"curso"         validate:"required,min=1"`
	Recomendacion string `json:"recomendacion" validate:"required,min=1"`
}

type CambiarEstadoRequest struct {
	ClaveOportunidadRequest
	Estado string `json:"estado" validate:"required,oneof=pendiente contactado vendido descartado"`
}

type ComentarOportunidadRequest struct {
	ClaveOportunidadRequest
	Comentarios string `json:"comentarios"`
}

type ContactarOportunidadRequest struct {
	ClaveOportunidadRequest
	Canal string `json:"canal" validate:"required,oneof=whatsapp email"`
}

type CrearReglaRequest struct {
	CursoBase     string `json:"curso_base"    validate:"required,min=1"`
	DiasMinimos   int    `json:"dias_minimos"  validate:"min=0"`
	Recomendacion string `json:"recomendacion" validate:"required,min=1"`
	Mensaje       string `json:"mensaje"       validate:"required,min=1"`
}

type ActualizarReglaRequest = CrearReglaRequest

// ─── Response DTOs ───────────────────────────────────────────────────────────

type HistorialEntryResponse struct {
	Accion     string `json:"accion"`
	Fecha      string `json:"fecha"`
	Comentario string `json:"comentario,omitempty"`
}

type OportunidadResponse struct {
	Cliente             string                   `json:"cliente"`
	Curso               string                   `json:"curso"`
	Recomendacion       string                   `json:"recomendacion"`
	FechaCurso          string                   `json:"fecha_curso"`
	Dias                int                      `json:"dias"`
	Mensaje             string                   `json:"mensaje"`
	Estado              string                   `json:"estado"`
	Comentarios         string                   `json:"comentarios,omitempty"`
	FechaUltimoContacto *string                  `json:"fecha_ultimo_contacto,omitempty"`
	Persistida          bool                     `json:"persistida"`
	Historial           []HistorialEntryResponse `json:"historial"`
}

type ContactarOportunidadResponse struct {
	Oportunidad OportunidadResponse `json:"oportunidad"`
	// LinkWhatsApp is set for the whatsapp channel only.
	LinkWhatsApp string `json:"link_whatsapp,omitempty"`
}

type ReglaResponse struct {
	ID            string `json:"id"`
	CursoBase     string `json:"curso_base"`
	DiasMinimos   int    `json:"dias_minimos"`
	Recomendacion string `json:"recomendacion"`
	Mensaje       string `json:"mensaje"`
}
