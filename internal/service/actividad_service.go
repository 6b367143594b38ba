package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/infra"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var tiposActividad = map[string]struct{}{
	model.TipoCurso:     {},
	model.TipoInmersion: {},
	model.TipoSalida:    {},
}

var horaRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// PlantillaRecordatorio is the default reminder template; each placeholder is
// substituted once.
const PlantillaRecordatorio = "Hola {nombre}, te recordamos tu {actividad} mañana a las {hora}. ¡Te esperamos!"

// Recordatorio is one composed attendee reminder: the WhatsApp link when the
// client has a phone, and whether an email was queued.
type Recordatorio struct {
	Cliente       string `json:"cliente"`
	Actividad     string `json:"actividad"`
	Hora          string `json:"hora"`
	Mensaje       string `json:"mensaje"`
	LinkWhatsApp  string `json:"link_whatsapp,omitempty"`
	EmailEncolado bool   `json:"email_encolado"`
}

// ActividadService runs the agenda: scheduled courses, dives and trips, their
// attendee lists, completion (which feeds course history) and next-day
// reminders.
type ActividadService struct {
	actividades repository.ActividadRepository
	clientes    repository.ClienteRepository
	mailer      EmailEnqueuer
	codigoPais  string
	now         func() time.Time
}

func NewActividadService(
	actividades repository.ActividadRepository,
	clientes repository.ClienteRepository,
	mailer EmailEnqueuer,
	codigoPais string,
) *ActividadService {
	return &ActividadService{
		actividades: actividades,
		clientes:    clientes,
		mailer:      mailer,
		codigoPais:  codigoPais,
		now:         time.Now,
	}
}

func (s *ActividadService) Crear(ctx context.Context, centro, nombre, tipo string, fecha time.Time, hora, instructor string) (*model.Actividad, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" || !horaRe.MatchString(hora) {
		return nil, ErrValidacion
	}
	if _, ok := tiposActividad[tipo]; !ok {
		return nil, ErrValidacion
	}
	a := &model.Actividad{
		Centro:     centro,
		Nombre:     nombre,
		Tipo:       tipo,
		Fecha:      fecha,
		Hora:       hora,
		Instructor: instructor,
	}
	if err := s.actividades.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ActividadService) Buscar(ctx context.Context, centro string, id uuid.UUID) (*model.Actividad, error) {
	return s.actividades.FindByID(ctx, centro, id)
}

// ListarSemana returns the activities of [desde, desde+7d).
func (s *ActividadService) ListarSemana(ctx context.Context, centro string, desde time.Time) ([]model.Actividad, error) {
	return s.actividades.ListEntreFechas(ctx, centro, desde, desde.AddDate(0, 0, 7))
}

func (s *ActividadService) Actualizar(ctx context.Context, centro string, id uuid.UUID, nombre string, fecha time.Time, hora, instructor string) (*model.Actividad, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" || !horaRe.MatchString(hora) {
		return nil, ErrValidacion
	}
	a, err := s.actividades.FindByID(ctx, centro, id)
	if err != nil {
		return nil, err
	}
	a.Nombre = nombre
	a.Fecha = fecha
	a.Hora = hora
	a.Instructor = instructor
	if err := s.actividades.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ActividadService) Eliminar(ctx context.Context, centro string, id uuid.UUID) error {
	if _, err := s.actividades.FindByID(ctx, centro, id); err != nil {
		return err
	}
	return s.actividades.Delete(ctx, centro, id)
}

func (s *ActividadService) Apuntar(ctx context.Context, centro string, actividadID, clienteID uuid.UUID) error {
	a, err := s.actividades.FindByID(ctx, centro, actividadID)
	if err != nil {
		return err
	}
	for _, as := range a.Asistentes {
		if as.ClienteID == clienteID {
			return ErrValidacion
		}
	}
	if _, err := s.clientes.FindByID(ctx, centro, clienteID); err != nil {
		return err
	}
	return s.actividades.AddAsistente(ctx, &model.AsistenteActividad{
		ActividadID: actividadID,
		ClienteID:   clienteID,
	})
}

// Completar marks an activity done. For a curso, every attendee gets a
// CursoRealizado row dated the activity's fecha — the rows the opportunity
// engine matches rules against. Completing twice is rejected so history rows
// are not duplicated.
func (s *ActividadService) Completar(ctx context.Context, centro string, id uuid.UUID) (*model.Actividad, error) {
	a, err := s.actividades.FindByID(ctx, centro, id)
	if err != nil {
		return nil, err
	}
	if a.Completada {
		return nil, ErrValidacion
	}

	err = runTx(s.actividades.DB(), func(tx *gorm.DB) error {
		if a.Tipo == model.TipoCurso {
			for _, as := range a.Asistentes {
				cr := &model.CursoRealizado{
					ClienteID: as.ClienteID,
					Curso:     a.Nombre,
					Fecha:     a.Fecha,
				}
				if err := s.clientes.AddCursoTx(tx, cr); err != nil {
					return err
				}
			}
		}
		a.Completada = true
		if tx == nil {
			return s.actividades.Update(ctx, a)
		}
		return tx.Model(&model.Actividad{}).Where("id = ?", a.ID).Update("completada", true).Error
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Recordatorios composes the next-day reminders for a centro: one per
// attendee of each activity on fecha, WhatsApp link when a phone is on file,
// email queued when an email is on file.
func (s *ActividadService) Recordatorios(ctx context.Context, centro string, fecha time.Time) ([]Recordatorio, error) {
	dia := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, fecha.Location())
	actividades, err := s.actividades.ListEntreFechas(ctx, centro, dia, dia.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	var out []Recordatorio
	for _, a := range actividades {
		for _, as := range a.Asistentes {
			if as.Cliente == nil {
				continue
			}
			cli := as.Cliente
			mensaje := RenderMensaje(PlantillaRecordatorio, ValoresMensaje{
				Nombre:    cli.Nombre,
				Actividad: a.Nombre,
				Hora:      a.Hora,
			})
			r := Recordatorio{
				Cliente:   cli.Nombre,
				Actividad: a.Nombre,
				Hora:      a.Hora,
				Mensaje:   mensaje,
			}
			if cli.Telefono != nil && *cli.Telefono != "" {
				r.LinkWhatsApp = infra.EnlaceWhatsApp(*cli.Telefono, s.codigoPais, mensaje)
			}
			if cli.Email != nil && *cli.Email != "" {
				if err := s.mailer.EnqueueEmail(ctx, *cli.Email, "Recordatorio: "+a.Nombre, mensaje); err != nil {
					log.Error().Err(err).Str("cliente", cli.Nombre).Msg("no se pudo encolar el recordatorio")
				} else {
					r.EmailEncolado = true
				}
			}
			out = append(out, r)
		}
	}
	return out, nil
}
