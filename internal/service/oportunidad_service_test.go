package service

import (
	"context"
	"testing"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var ahoraFija = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func nuevaOportunidadService(opps *stubOportunidadRepo, clientes *stubClienteRepo, reglas *stubReglaRepo, mailer *stubMailer) *OportunidadService {
	s := NewOportunidadService(opps, clientes, reglas, mailer, "34")
	s.now = func() time.Time { return ahoraFija }
	return s
}

func clienteConCurso(centro, nombre, curso string, hace int) *model.Cliente {
	tel := "600 123 456"
	email := nombre + "@test.local"
	c := &model.Cliente{
		Centro:   centro,
		Nombre:   nombre,
		Telefono: &tel,
		Email:    &email,
	}
	c.Cursos = []model.CursoRealizado{{
		Curso: curso,
		Fecha: ahoraFija.AddDate(0, 0, -hace),
	}}
	return c
}

func reglaDe(centro, base string, dias int, recomendacion string) model.ReglaOportunidad {
	return model.ReglaOportunidad{
		Centro:        centro,
		CursoBase:     base,
		DiasMinimos:   dias,
		Recomendacion: recomendacion,
		Mensaje:       "Hola {nombre}, ¿te animas con el {actividad}?",
	}
}

func TestCalcularCandidatasUmbralDeDias(t *testing.T) {
	reglas := []model.ReglaOportunidad{reglaDe("c1", "Open Water", 30, "Advanced")}

	// Exactamente en el umbral: entra.
	justo := clienteConCurso("c1", "Ana", "Open Water", 30)
	out := CalcularCandidatas([]model.Cliente{*justo}, reglas, ahoraFija)
	require.Len(t, out, 1)
	assert.Equal(t, "Advanced", out[0].Recomendacion)
	assert.Equal(t, 30, out[0].Dias)
	assert.Equal(t, model.EstadoPendiente, out[0].Estado)
	assert.Empty(t, out[0].Historial)

	// Un día por debajo: fuera.
	pronto := clienteConCurso("c1", "Bea", "Open Water", 29)
	out = CalcularCandidatas([]model.Cliente{*pronto}, reglas, ahoraFija)
	assert.Empty(t, out)
}

func TestCalcularCandidatasCursoCaseInsensitive(t *testing.T) {
	reglas := []model.ReglaOportunidad{reglaDe("c1", "open water", 10, "Advanced")}
	cli := clienteConCurso("c1", "Ana", "OPEN WATER", 20)

	out := CalcularCandidatas([]model.Cliente{*cli}, reglas, ahoraFija)
	require.Len(t, out, 1)
	// La clave conserva el curso tal y como lo hizo el cliente.
	assert.Equal(t, "OPEN WATER", out[0].Curso)
}

func TestCalcularCandidatasDosReglasMismoCurso(t *testing.T) {
	reglas := []model.ReglaOportunidad{
		reglaDe("c1", "Open Water", 10, "Advanced"),
		reglaDe("c1", "Open Water", 10, "Nitrox"),
	}
	cli := clienteConCurso("c1", "Ana", "Open Water", 20)

	out := CalcularCandidatas([]model.Cliente{*cli}, reglas, ahoraFija)
	assert.Len(t, out, 2)
}

func TestCombinarConPersistidasDedupYOrden(t *testing.T) {
	persistida := model.Oportunidad{
		Centro: "c1", ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced",
		Estado: model.EstadoContactado,
	}
	candidatas := []model.Oportunidad{
		{Centro: "c1", ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced", Estado: model.EstadoPendiente},
		{Centro: "c1", ClienteNombre: "Bea", Curso: "Open Water", Recomendacion: "Advanced", Estado: model.EstadoPendiente},
	}

	out := CombinarConPersistidas([]model.Oportunidad{persistida}, candidatas)
	require.Len(t, out, 2)
	// La persistida gana el puesto y conserva su estado.
	assert.Equal(t, "Ana", out[0].ClienteNombre)
	assert.Equal(t, model.EstadoContactado, out[0].Estado)
	assert.Equal(t, "Bea", out[1].ClienteNombre)
}

func TestCambiarEstadoMaterializaYRegistraHistorial(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	reglas := &stubReglaRepo{}
	svc := nuevaOportunidadService(opps, clientes, reglas, &stubMailer{})

	require.NoError(t, clientes.Create(context.Background(), clienteConCurso("c1", "Ana", "Open Water", 45)))
	require.NoError(t, reglas.Create(context.Background(), &model.ReglaOportunidad{
		Centro: "c1", CursoBase: "Open Water", DiasMinimos: 30, Recomendacion: "Advanced", Mensaje: "m",
	}))

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	o, err := svc.CambiarEstado(context.Background(), "c1", clave, model.EstadoVendido)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoVendido, o.Estado)
	assert.Equal(t, 45, o.Dias) // congelado al materializar
	require.Len(t, o.Historial, 1)
	assert.Equal(t, "Estado: Vendido", o.Historial[0].Accion)

	// La fila ya existe: otro cambio no crea una segunda, pero sí anota.
	o, err = svc.CambiarEstado(context.Background(), "c1", clave, model.EstadoVendido)
	require.NoError(t, err)
	assert.Len(t, opps.opps, 1)
	assert.Len(t, o.Historial, 2)
}

func TestCambiarEstadoInvalido(t *testing.T) {
	svc := nuevaOportunidadService(newStubOportunidadRepo(), newStubClienteRepo(), &stubReglaRepo{}, &stubMailer{})

	_, err := svc.CambiarEstado(context.Background(), "c1", model.ClaveOportunidad{ClienteNombre: "Ana"}, "archivado")
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestCambiarEstadoSinCandidataNoMaterializa(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	svc := nuevaOportunidadService(opps, clientes, &stubReglaRepo{}, &stubMailer{})

	require.NoError(t, clientes.Create(context.Background(), clienteConCurso("c1", "Ana", "Open Water", 45)))

	// Sin regla que la genere, la clave no corresponde a ninguna candidata.
	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	_, err := svc.CambiarEstado(context.Background(), "c1", clave, model.EstadoVendido)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, opps.opps)
}

func TestComentarNoAnotaHistorial(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	reglas := &stubReglaRepo{}
	svc := nuevaOportunidadService(opps, clientes, reglas, &stubMailer{})

	require.NoError(t, clientes.Create(context.Background(), clienteConCurso("c1", "Ana", "Open Water", 45)))
	require.NoError(t, reglas.Create(context.Background(), &model.ReglaOportunidad{
		Centro: "c1", CursoBase: "Open Water", DiasMinimos: 30, Recomendacion: "Advanced", Mensaje: "m",
	}))

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	o, err := svc.Comentar(context.Background(), "c1", clave, "prefiere en julio")
	require.NoError(t, err)
	assert.Equal(t, "prefiere en julio", o.Comentarios)
	assert.Empty(t, o.Historial)
	assert.Len(t, opps.opps, 1) // comentar también materializa
}

func TestContactarWhatsApp(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	reglas := &stubReglaRepo{}
	svc := nuevaOportunidadService(opps, clientes, reglas, &stubMailer{})

	require.NoError(t, clientes.Create(context.Background(), clienteConCurso("c1", "Ana", "Open Water", 45)))
	require.NoError(t, reglas.Create(context.Background(), &model.ReglaOportunidad{
		Centro: "c1", CursoBase: "Open Water", DiasMinimos: 30, Recomendacion: "Advanced",
		Mensaje: "Hola {nombre}, ¿te animas con el {actividad}?",
	}))

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	link, o, err := svc.ContactarWhatsApp(context.Background(), "c1", clave)
	require.NoError(t, err)
	assert.Contains(t, link, "https://wa.me/34600123456?text=")
	assert.Equal(t, model.EstadoContactado, o.Estado)
	require.NotNil(t, o.FechaUltimoContacto)
	require.Len(t, o.Historial, 1)
	assert.Equal(t, "Contacto WhatsApp", o.Historial[0].Accion)
}

func TestContactarWhatsAppSinTelefono(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	svc := nuevaOportunidadService(opps, clientes, &stubReglaRepo{}, &stubMailer{})

	cli := clienteConCurso("c1", "Ana", "Open Water", 45)
	cli.Telefono = nil
	require.NoError(t, clientes.Create(context.Background(), cli))

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	_, _, err := svc.ContactarWhatsApp(context.Background(), "c1", clave)
	assert.ErrorIs(t, err, ErrSinTelefono)
	// El guard corta antes de materializar: ninguna fila nueva.
	assert.Empty(t, opps.opps)
}

func TestContactarEmailEncolaMensaje(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	reglas := &stubReglaRepo{}
	mailer := &stubMailer{}
	svc := nuevaOportunidadService(opps, clientes, reglas, mailer)

	require.NoError(t, clientes.Create(context.Background(), clienteConCurso("c1", "Ana", "Open Water", 45)))
	require.NoError(t, reglas.Create(context.Background(), &model.ReglaOportunidad{
		Centro: "c1", CursoBase: "Open Water", DiasMinimos: 30, Recomendacion: "Advanced",
		Mensaje: "Hola {nombre}, ¿te animas con el {actividad}?",
	}))

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	o, err := svc.ContactarEmail(context.Background(), "c1", clave)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoContactado, o.Estado)
	require.Len(t, mailer.emails, 1)
	assert.Equal(t, "Ana@test.local", mailer.emails[0].To)
	assert.Equal(t, "Te esperamos para tu Advanced", mailer.emails[0].Subject)
	assert.Equal(t, "Hola Ana, ¿te animas con el Advanced?", mailer.emails[0].Body)
}

func TestContactarEmailSinDireccion(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	svc := nuevaOportunidadService(opps, clientes, &stubReglaRepo{}, &stubMailer{})

	cli := clienteConCurso("c1", "Ana", "Open Water", 45)
	cli.Email = nil
	require.NoError(t, clientes.Create(context.Background(), cli))

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	_, err := svc.ContactarEmail(context.Background(), "c1", clave)
	assert.ErrorIs(t, err, ErrSinEmail)
	assert.Empty(t, opps.opps)
}

func TestEliminarSoloDescartadas(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	reglas := &stubReglaRepo{}
	svc := nuevaOportunidadService(opps, clientes, reglas, &stubMailer{})

	require.NoError(t, clientes.Create(context.Background(), clienteConCurso("c1", "Ana", "Open Water", 45)))
	require.NoError(t, reglas.Create(context.Background(), &model.ReglaOportunidad{
		Centro: "c1", CursoBase: "Open Water", DiasMinimos: 30, Recomendacion: "Advanced", Mensaje: "m",
	}))

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	_, err := svc.CambiarEstado(context.Background(), "c1", clave, model.EstadoContactado)
	require.NoError(t, err)

	err = svc.Eliminar(context.Background(), "c1", clave)
	assert.ErrorIs(t, err, ErrNoEliminable)

	_, err = svc.CambiarEstado(context.Background(), "c1", clave, model.EstadoDescartado)
	require.NoError(t, err)
	require.NoError(t, svc.Eliminar(context.Background(), "c1", clave))
	assert.Empty(t, opps.opps)
}

func TestEliminarCandidataNoPersistida(t *testing.T) {
	svc := nuevaOportunidadService(newStubOportunidadRepo(), newStubClienteRepo(), &stubReglaRepo{}, &stubMailer{})

	clave := model.ClaveOportunidad{ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced"}
	err := svc.Eliminar(context.Background(), "c1", clave)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListarRecalculaDias(t *testing.T) {
	opps := newStubOportunidadRepo()
	clientes := newStubClienteRepo()
	reglas := &stubReglaRepo{}
	svc := nuevaOportunidadService(opps, clientes, reglas, &stubMailer{})

	require.NoError(t, opps.Create(context.Background(), &model.Oportunidad{
		Centro: "c1", ClienteNombre: "Ana", Curso: "Open Water", Recomendacion: "Advanced",
		FechaCurso: ahoraFija.AddDate(0, 0, -60),
		Dias:       40, // valor congelado, obsoleto
		Estado:     model.EstadoPendiente,
	}))

	out, err := svc.Listar(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 60, out[0].Dias)
}
