package dto

import "github.com/shopspring/decimal"

// ─── Bonos ───────────────────────────────────────────────────────────────────

type CrearBonoRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	Tipo      string `json:"tipo"       validate:"required,oneof=inmersiones cursos"`
	Creditos  int    `json:"creditos"   validate:"required,min=1"`
}

type ConsumirCreditoRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type BonoResponse struct {
	ID              string `json:"id"`
	ClienteID       string `json:"cliente_id"`
	ClienteNombre   string `json:"cliente_nombre,omitempty"`
	Tipo            string `json:"tipo"`
	CreditosTotales int    `json:"creditos_totales"`
	CreditosUsados  int    `json:"creditos_usados"`
}

// ─── Gastos ──────────────────────────────────────────────────────────────────

type CrearGastoRequest struct {
	Concepto  string          `json:"concepto"  validate:"required,min=1,max=300"`
	Categoria string          `json:"categoria" validate:"omitempty,max=100"`
	Importe   decimal.Decimal `json:"importe"   validate:"required"`
	Fecha     string          `json:"fecha"     validate:"required,datetime=2006-01-02"`
}

type ActualizarGastoRequest = CrearGastoRequest

type GastoResponse struct {
	ID        string          `json:"id"`
	Fecha     string          `json:"fecha"`
	Concepto  string          `json:"concepto"`
	Categoria string          `json:"categoria"`
	Importe   decimal.Decimal `json:"importe"`
}

type TotalMesResponse struct {
	Mes   string          `json:"mes"`
	Total decimal.Decimal `json:"total"`
}

// ─── Actividades ─────────────────────────────────────────────────────────────

type CrearActividadRequest struct {
	Nombre     string `json:"nombre"     validate:"required,min=1,max=200"`
	Tipo       string `json:"tipo"       validate:"required,oneof=curso inmersion salida"`
	Fecha      string `json:"fecha"      validate:"required,datetime=2006-01-02"`
	Hora       string `json:"hora"       validate:"required"`
	Instructor string `json:"instructor" validate:"required,min=1"`
}

type ActualizarActividadRequest struct {
	Nombre     string `json:"nombre"     validate:"required,min=1,max=200"`
	Fecha      string `json:"fecha"      validate:"required,datetime=2006-01-02"`
	Hora       string `json:"hora"       validate:"required"`
	Instructor string `json:"instructor" validate:"required,min=1"`
}

type ApuntarAsistenteRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
}

type AsistenteResponse struct {
	ClienteID     string `json:"cliente_id"`
	ClienteNombre string `json:"cliente_nombre"`
}

type ActividadResponse struct {
	ID         string              `json:"id"`
	Nombre     string              `json:"nombre"`
	Tipo       string              `json:"tipo"`
	Fecha      string              `json:"fecha"`
	Hora       string              `json:"hora"`
	Instructor string              `json:"instructor"`
	Completada bool                `json:"completada"`
	Asistentes []AsistenteResponse `json:"asistentes"`
}

type RecordatorioResponse struct {
	Cliente       string `json:"cliente"`
	Actividad     string `json:"actividad"`
	Hora          string `json:"hora"`
	Mensaje       string `json:"mensaje"`
	LinkWhatsApp  string `json:"link_whatsapp,omitempty"`
	EmailEncolado bool   `json:"email_encolado"`
}
