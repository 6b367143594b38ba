package service

import (
	"context"
	"testing"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevaActividadService(actividades *stubActividadRepo, clientes *stubClienteRepo, mailer *stubMailer) *ActividadService {
	s := NewActividadService(actividades, clientes, mailer, "34")
	s.now = func() time.Time { return ahoraFija }
	return s
}

func TestCrearActividadValidaciones(t *testing.T) {
	svc := nuevaActividadService(newStubActividadRepo(), newStubClienteRepo(), &stubMailer{})

	_, err := svc.Crear(context.Background(), "c1", "", model.TipoCurso, ahoraFija, "09:00", "Marta")
	assert.ErrorIs(t, err, ErrValidacion)

	_, err = svc.Crear(context.Background(), "c1", "Open Water", model.TipoCurso, ahoraFija, "25:00", "Marta")
	assert.ErrorIs(t, err, ErrValidacion)

	_, err = svc.Crear(context.Background(), "c1", "Open Water", "fiesta", ahoraFija, "09:00", "Marta")
	assert.ErrorIs(t, err, ErrValidacion)

	a, err := svc.Crear(context.Background(), "c1", "Open Water", model.TipoCurso, ahoraFija, "09:00", "Marta")
	require.NoError(t, err)
	assert.False(t, a.Completada)
}

func TestApuntarAsistenteDuplicado(t *testing.T) {
	actividades := newStubActividadRepo()
	clientes := newStubClienteRepo()
	svc := nuevaActividadService(actividades, clientes, &stubMailer{})

	cli := &model.Cliente{Centro: "c1", Nombre: "Ana"}
	require.NoError(t, clientes.Create(context.Background(), cli))
	a, err := svc.Crear(context.Background(), "c1", "Inmersión nocturna", model.TipoInmersion, ahoraFija, "21:00", "Marta")
	require.NoError(t, err)

	require.NoError(t, svc.Apuntar(context.Background(), "c1", a.ID, cli.ID))
	err = svc.Apuntar(context.Background(), "c1", a.ID, cli.ID)
	assert.ErrorIs(t, err, ErrValidacion)
	assert.Len(t, a.Asistentes, 1)
}

func TestCompletarCursoRegistraCursosRealizados(t *testing.T) {
	actividades := newStubActividadRepo()
	clientes := newStubClienteRepo()
	svc := nuevaActividadService(actividades, clientes, &stubMailer{})

	ana := &model.Cliente{Centro: "c1", Nombre: "Ana"}
	bea := &model.Cliente{Centro: "c1", Nombre: "Bea"}
	require.NoError(t, clientes.Create(context.Background(), ana))
	require.NoError(t, clientes.Create(context.Background(), bea))

	fecha := ahoraFija.AddDate(0, 0, -2)
	a, err := svc.Crear(context.Background(), "c1", "Open Water", model.TipoCurso, fecha, "09:00", "Marta")
	require.NoError(t, err)
	require.NoError(t, svc.Apuntar(context.Background(), "c1", a.ID, ana.ID))
	require.NoError(t, svc.Apuntar(context.Background(), "c1", a.ID, bea.ID))

	a, err = svc.Completar(context.Background(), "c1", a.ID)
	require.NoError(t, err)
	assert.True(t, a.Completada)

	require.Len(t, ana.Cursos, 1)
	assert.Equal(t, "Open Water", ana.Cursos[0].Curso)
	assert.True(t, ana.Cursos[0].Fecha.Equal(fecha))
	assert.Len(t, bea.Cursos, 1)

	// Doble completado rechazado: sin filas de curso duplicadas.
	_, err = svc.Completar(context.Background(), "c1", a.ID)
	assert.ErrorIs(t, err, ErrValidacion)
	assert.Len(t, ana.Cursos, 1)
}

func TestCompletarInmersionNoTocaElHistorialDeCursos(t *testing.T) {
	actividades := newStubActividadRepo()
	clientes := newStubClienteRepo()
	svc := nuevaActividadService(actividades, clientes, &stubMailer{})

	ana := &model.Cliente{Centro: "c1", Nombre: "Ana"}
	require.NoError(t, clientes.Create(context.Background(), ana))
	a, err := svc.Crear(context.Background(), "c1", "Inmersión nocturna", model.TipoInmersion, ahoraFija, "21:00", "Marta")
	require.NoError(t, err)
	require.NoError(t, svc.Apuntar(context.Background(), "c1", a.ID, ana.ID))

	_, err = svc.Completar(context.Background(), "c1", a.ID)
	require.NoError(t, err)
	assert.Empty(t, ana.Cursos)
}

func TestRecordatoriosComponenMensajeYCanales(t *testing.T) {
	actividades := newStubActividadRepo()
	clientes := newStubClienteRepo()
	mailer := &stubMailer{}
	svc := nuevaActividadService(actividades, clientes, mailer)

	tel := "600-11-22-33"
	email := "ana@test.local"
	ana := &model.Cliente{Centro: "c1", Nombre: "Ana", Telefono: &tel, Email: &email}
	solo := &model.Cliente{Centro: "c1", Nombre: "Bea"} // sin teléfono ni email
	require.NoError(t, clientes.Create(context.Background(), ana))
	require.NoError(t, clientes.Create(context.Background(), solo))

	manana := time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)
	a := &model.Actividad{
		Centro: "c1", Nombre: "Salida en barco", Tipo: model.TipoSalida,
		Fecha: manana, Hora: "08:30", Instructor: "Marta",
	}
	require.NoError(t, actividades.Create(context.Background(), a))
	a.Asistentes = []model.AsistenteActividad{
		{ActividadID: a.ID, ClienteID: ana.ID, Cliente: ana},
		{ActividadID: a.ID, ClienteID: solo.ID, Cliente: solo},
	}

	out, err := svc.Recordatorios(context.Background(), "c1", manana)
	require.NoError(t, err)
	require.Len(t, out, 2)

	porCliente := make(map[string]Recordatorio, 2)
	for _, r := range out {
		porCliente[r.Cliente] = r
	}

	rAna := porCliente["Ana"]
	assert.Equal(t, "Hola Ana, te recordamos tu Salida en barco mañana a las 08:30. ¡Te esperamos!", rAna.Mensaje)
	assert.Contains(t, rAna.LinkWhatsApp, "https://wa.me/34600112233?text=")
	assert.True(t, rAna.EmailEncolado)
	require.Len(t, mailer.emails, 1)
	assert.Equal(t, "Recordatorio: Salida en barco", mailer.emails[0].Subject)

	rBea := porCliente["Bea"]
	assert.Empty(t, rBea.LinkWhatsApp)
	assert.False(t, rBea.EmailEncolado)
}

func TestRecordatoriosSinActividades(t *testing.T) {
	svc := nuevaActividadService(newStubActividadRepo(), newStubClienteRepo(), &stubMailer{})

	out, err := svc.Recordatorios(context.Background(), "c1", ahoraFija)
	require.NoError(t, err)
	assert.Empty(t, out)
}
