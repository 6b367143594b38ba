package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/infra"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EmailEnqueuer pushes an outbound email onto the job queue. Implemented by
// the worker dispatcher; a stub in tests.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, to, subject, body string) error
}

// OportunidadService runs the upsell engine: trigger rules over the clients'
// course history produce candidate opportunities, which stay virtual until a
// mutation (estado change, comment, contact) materializes them as rows.
type OportunidadService struct {
	opps       repository.OportunidadRepository
	clientes   repository.ClienteRepository
	reglas     repository.ReglaRepository
	mailer     EmailEnqueuer
	codigoPais string
	now        func() time.Time
}

func NewOportunidadService(
	opps repository.OportunidadRepository,
	clientes repository.ClienteRepository,
	reglas repository.ReglaRepository,
	mailer EmailEnqueuer,
	codigoPais string,
) *OportunidadService {
	return &OportunidadService{
		opps:       opps,
		clientes:   clientes,
		reglas:     reglas,
		mailer:     mailer,
		codigoPais: codigoPais,
		now:        time.Now,
	}
}

func diasDesde(fecha, ahora time.Time) int {
	return int(ahora.Sub(fecha) / (24 * time.Hour))
}

// CalcularCandidatas derives the candidate set from clients and rules. Pure:
// no I/O, no mutation. A client matches a rule when any completed course
// equals the rule's CursoBase (case-insensitive) and at least DiasMinimos full
// days have elapsed since its date. One candidate per (client, matching
// course, rule); candidates are born pendiente with empty history.
func CalcularCandidatas(clientes []model.Cliente, reglas []model.ReglaOportunidad, ahora time.Time) []model.Oportunidad {
	var out []model.Oportunidad
	for _, cli := range clientes {
		for _, curso := range cli.Cursos {
			for _, regla := range reglas {
				if !strings.EqualFold(curso.Curso, regla.CursoBase) {
					continue
				}
				dias := diasDesde(curso.Fecha, ahora)
				if dias < regla.DiasMinimos {
					continue
				}
				out = append(out, model.Oportunidad{
					Centro:        cli.Centro,
					ClienteNombre: cli.Nombre,
					Curso:         curso.Curso,
					Recomendacion: regla.Recomendacion,
					FechaCurso:    curso.Fecha,
					Dias:          dias,
					Mensaje:       regla.Mensaje,
					Estado:        model.EstadoPendiente,
				})
			}
		}
	}
	return out
}

// CombinarConPersistidas merges persisted opportunities with derived
// candidates: persisted rows first, in insertion order, then candidates whose
// identity triple is not already taken.
func CombinarConPersistidas(persistidas, candidatas []model.Oportunidad) []model.Oportunidad {
	vistas := make(map[model.ClaveOportunidad]struct{}, len(persistidas))
	out := make([]model.Oportunidad, 0, len(persistidas)+len(candidatas))
	for _, o := range persistidas {
		vistas[o.Clave()] = struct{}{}
		out = append(out, o)
	}
	for _, c := range candidatas {
		if _, ok := vistas[c.Clave()]; ok {
			continue
		}
		vistas[c.Clave()] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Listar returns the combined opportunity list for a centro. Dias on persisted
// rows is recomputed from FechaCurso; the frozen value only marks when the
// row materialized.
func (s *OportunidadService) Listar(ctx context.Context, centro string) ([]model.Oportunidad, error) {
	persistidas, err := s.opps.List(ctx, centro)
	if err != nil {
		return nil, err
	}
	ahora := s.now()
	for i := range persistidas {
		persistidas[i].Dias = diasDesde(persistidas[i].FechaCurso, ahora)
	}

	clientes, err := s.clientes.ListConCursos(ctx, centro)
	if err != nil {
		return nil, err
	}
	reglas, err := s.reglas.List(ctx, centro)
	if err != nil {
		return nil, err
	}
	return CombinarConPersistidas(persistidas, CalcularCandidatas(clientes, reglas, ahora)), nil
}

// materializar resolves a clave to a persisted row, inserting the matching
// candidate on first mutation. Dias is frozen at this moment.
func (s *OportunidadService) materializar(ctx context.Context, centro string, clave model.ClaveOportunidad) (*model.Oportunidad, error) {
	o, err := s.opps.FindByClave(ctx, centro, clave)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cli, err := s.clientes.FindByNombre(ctx, centro, clave.ClienteNombre)
	if err != nil {
		return nil, err
	}
	reglas, err := s.reglas.List(ctx, centro)
	if err != nil {
		return nil, err
	}
	for _, cand := range CalcularCandidatas([]model.Cliente{*cli}, reglas, s.now()) {
		if cand.Clave() == clave {
			cand.Centro = centro
			if err := s.opps.Create(ctx, &cand); err != nil {
				return nil, err
			}
			return &cand, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var etiquetasEstado = map[string]string{
	model.EstadoPendiente:  "Pendiente",
	model.EstadoContactado: "Contactado",
	model.EstadoVendido:    "Vendido",
	model.EstadoDescartado: "Descartado",
}

// CambiarEstado moves an opportunity through its lifecycle and appends a
// history entry. The entry is appended even when the estado does not change:
// the log records the operator's action, not the delta.
func (s *OportunidadService) CambiarEstado(ctx context.Context, centro string, clave model.ClaveOportunidad, estado string) (*model.Oportunidad, error) {
	etiqueta, ok := etiquetasEstado[estado]
	if !ok {
		return nil, ErrValidacion
	}
	o, err := s.materializar(ctx, centro, clave)
	if err != nil {
		return nil, err
	}
	o.Estado = estado
	if err := s.opps.Update(ctx, o); err != nil {
		return nil, err
	}
	h := model.HistorialOportunidad{
		OportunidadID: o.ID,
		Accion:        "Estado: " + etiqueta,
		Fecha:         s.now(),
	}
	if err := s.opps.AppendHistorial(ctx, &h); err != nil {
		return nil, err
	}
	o.Historial = append(o.Historial, h)
	return o, nil
}

// Comentar replaces the free-text comment. No history entry: comments are a
// scratchpad, not actions.
func (s *OportunidadService) Comentar(ctx context.Context, centro string, clave model.ClaveOportunidad, comentario string) (*model.Oportunidad, error) {
	o, err := s.materializar(ctx, centro, clave)
	if err != nil {
		return nil, err
	}
	o.Comentarios = comentario
	if err := s.opps.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ContactarWhatsApp marks the opportunity contactado and returns the wa.me
// deep link with the rendered message. Fails with ErrSinTelefono before any
// mutation when the client has no phone on file.
func (s *OportunidadService) ContactarWhatsApp(ctx context.Context, centro string, clave model.ClaveOportunidad) (string, *model.Oportunidad, error) {
	cli, err := s.clientes.FindByNombre(ctx, centro, clave.ClienteNombre)
	if err != nil {
		return "", nil, err
	}
	if cli.Telefono == nil || *cli.Telefono == "" {
		return "", nil, ErrSinTelefono
	}

	o, err := s.registrarContacto(ctx, centro, clave, "Contacto WhatsApp")
	if err != nil {
		return "", nil, err
	}
	mensaje := RenderMensaje(o.Mensaje, ValoresMensaje{
		Nombre:    cli.Nombre,
		Actividad: o.Recomendacion,
	})
	return infra.EnlaceWhatsApp(*cli.Telefono, s.codigoPais, mensaje), o, nil
}

// ContactarEmail marks the opportunity contactado and queues the message for
// the email worker. Fails with ErrSinEmail before any mutation when the
// client has no email on file.
func (s *OportunidadService) ContactarEmail(ctx context.Context, centro string, clave model.ClaveOportunidad) (*model.Oportunidad, error) {
	cli, err := s.clientes.FindByNombre(ctx, centro, clave.ClienteNombre)
	if err != nil {
		return nil, err
	}
	if cli.Email == nil || *cli.Email == "" {
		return nil, ErrSinEmail
	}

	o, err := s.registrarContacto(ctx, centro, clave, "Contacto Email")
	if err != nil {
		return nil, err
	}
	mensaje := RenderMensaje(o.Mensaje, ValoresMensaje{
		Nombre:    cli.Nombre,
		Actividad: o.Recomendacion,
	})
	asunto := fmt.Sprintf("Te esperamos para tu %s", o.Recomendacion)
	if err := s.mailer.EnqueueEmail(ctx, *cli.Email, asunto, mensaje); err != nil {
		// The contact is already recorded; a queue hiccup should not undo it.
		log.Error().Err(err).Str("cliente", cli.Nombre).Msg("no se pudo encolar el email de contacto")
	}
	return o, nil
}

func (s *OportunidadService) registrarContacto(ctx context.Context, centro string, clave model.ClaveOportunidad, accion string) (*model.Oportunidad, error) {
	o, err := s.materializar(ctx, centro, clave)
	if err != nil {
		return nil, err
	}
	ahora := s.now()
	o.Estado = model.EstadoContactado
	o.FechaUltimoContacto = &ahora
	if err := s.opps.Update(ctx, o); err != nil {
		return nil, err
	}
	h := model.HistorialOportunidad{
		OportunidadID: o.ID,
		Accion:        accion,
		Fecha:         ahora,
	}
	if err := s.opps.AppendHistorial(ctx, &h); err != nil {
		return nil, err
	}
	o.Historial = append(o.Historial, h)
	return o, nil
}

// Eliminar removes a persisted opportunity. Only rows in estado descartado
// may be deleted; anything else fails with ErrNoEliminable. Candidates never
// persisted cannot be deleted (they do not exist).
func (s *OportunidadService) Eliminar(ctx context.Context, centro string, clave model.ClaveOportunidad) error {
	o, err := s.opps.FindByClave(ctx, centro, clave)
	if err != nil {
		return err
	}
	if o.Estado != model.EstadoDescartado {
		return ErrNoEliminable
	}
	return s.opps.DeleteByClave(ctx, centro, clave)
}
