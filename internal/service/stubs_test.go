package service

// In-memory repository stubs shared by the service tests. DB() returns nil,
// which makes runTx invoke the callback without a transaction.

import (
	"context"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── ClienteRepository stub ───────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	compras  []model.Compra
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, centro string, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok || c.Centro != centro {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByNombre(_ context.Context, centro, nombre string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Centro == centro && c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) ListConCursos(_ context.Context, centro string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.Centro == centro {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) List(ctx context.Context, centro string) ([]model.Cliente, error) {
	return r.ListConCursos(ctx, centro)
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, centro string, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) AddCurso(_ context.Context, curso *model.CursoRealizado) error {
	c, ok := r.clientes[curso.ClienteID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Cursos = append(c.Cursos, *curso)
	return nil
}

func (r *stubClienteRepo) AddCursoTx(_ *gorm.DB, curso *model.CursoRealizado) error {
	return r.AddCurso(context.Background(), curso)
}

func (r *stubClienteRepo) SumarPuntosTx(_ *gorm.DB, clienteID uuid.UUID, delta int) error {
	c, ok := r.clientes[clienteID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Puntos += delta
	return nil
}

func (r *stubClienteRepo) AddCompraTx(_ *gorm.DB, compra *model.Compra) error {
	r.compras = append(r.compras, *compra)
	return nil
}

// ── OportunidadRepository stub ───────────────────────────────────────────────

type stubOportunidadRepo struct {
	opps []*model.Oportunidad // insertion order
}

func newStubOportunidadRepo() *stubOportunidadRepo { return &stubOportunidadRepo{} }

func (r *stubOportunidadRepo) List(_ context.Context, centro string) ([]model.Oportunidad, error) {
	var out []model.Oportunidad
	for _, o := range r.opps {
		if o.Centro == centro {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOportunidadRepo) FindByClave(_ context.Context, centro string, clave model.ClaveOportunidad) (*model.Oportunidad, error) {
	for _, o := range r.opps {
		if o.Centro == centro && o.Clave() == clave {
			copia := *o
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOportunidadRepo) Create(_ context.Context, o *model.Oportunidad) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	copia := *o
	r.opps = append(r.opps, &copia)
	return nil
}

func (r *stubOportunidadRepo) Update(_ context.Context, o *model.Oportunidad) error {
	for i, existing := range r.opps {
		if existing.ID == o.ID {
			copia := *o
			r.opps[i] = &copia
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubOportunidadRepo) AppendHistorial(_ context.Context, h *model.HistorialOportunidad) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	for _, o := range r.opps {
		if o.ID == h.OportunidadID {
			o.Historial = append(o.Historial, *h)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubOportunidadRepo) DeleteByClave(_ context.Context, centro string, clave model.ClaveOportunidad) error {
	for i, o := range r.opps {
		if o.Centro == centro && o.Clave() == clave {
			r.opps = append(r.opps[:i], r.opps[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── ReglaRepository stub ─────────────────────────────────────────────────────

type stubReglaRepo struct {
	reglas []model.ReglaOportunidad
}

func (r *stubReglaRepo) Create(_ context.Context, regla *model.ReglaOportunidad) error {
	if regla.ID == uuid.Nil {
		regla.ID = uuid.New()
	}
	r.reglas = append(r.reglas, *regla)
	return nil
}

func (r *stubReglaRepo) List(_ context.Context, centro string) ([]model.ReglaOportunidad, error) {
	var out []model.ReglaOportunidad
	for _, regla := range r.reglas {
		if regla.Centro == centro {
			out = append(out, regla)
		}
	}
	return out, nil
}

func (r *stubReglaRepo) FindByID(_ context.Context, centro string, id uuid.UUID) (*model.ReglaOportunidad, error) {
	for i := range r.reglas {
		if r.reglas[i].Centro == centro && r.reglas[i].ID == id {
			return &r.reglas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReglaRepo) Update(_ context.Context, regla *model.ReglaOportunidad) error {
	for i := range r.reglas {
		if r.reglas[i].ID == regla.ID {
			r.reglas[i] = *regla
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubReglaRepo) Delete(_ context.Context, centro string, id uuid.UUID) error {
	for i := range r.reglas {
		if r.reglas[i].Centro == centro && r.reglas[i].ID == id {
			r.reglas = append(r.reglas[:i], r.reglas[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── ProductoRepository stub ──────────────────────────────────────────────────

type especialKey struct{ producto, cliente uuid.UUID }

type stubProductoRepo struct {
	productos  map[uuid.UUID]*model.Producto
	especiales map[especialKey]*model.PrecioEspecial
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos:  make(map[uuid.UUID]*model.Producto),
		especiales: make(map[especialKey]*model.PrecioEspecial),
	}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, centro string, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok || p.Centro != centro {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, centro string, soloActivos bool) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Centro != centro || (soloActivos && !p.Activo) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Desactivar(_ context.Context, centro string, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) FindPrecioEspecial(_ context.Context, productoID, clienteID uuid.UUID) (*model.PrecioEspecial, error) {
	pe, ok := r.especiales[especialKey{productoID, clienteID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pe, nil
}

func (r *stubProductoRepo) UpsertPrecioEspecial(_ context.Context, pe *model.PrecioEspecial) error {
	r.especiales[especialKey{pe.ProductoID, pe.ClienteID}] = pe
	return nil
}

// ── TicketRepository stub ────────────────────────────────────────────────────

type stubTicketRepo struct {
	tickets []*model.Ticket
}

func newStubTicketRepo() *stubTicketRepo { return &stubTicketRepo{} }

func (r *stubTicketRepo) DB() *gorm.DB { return nil }

func (r *stubTicketRepo) CreateTx(_ *gorm.DB, t *model.Ticket) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tickets = append(r.tickets, t)
	return nil
}

func (r *stubTicketRepo) FindByID(_ context.Context, centro string, id uuid.UUID) (*model.Ticket, error) {
	for _, t := range r.tickets {
		if t.Centro == centro && t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTicketRepo) ListAbiertos(_ context.Context, centro string) ([]model.Ticket, error) {
	var out []model.Ticket
	for _, t := range r.tickets {
		if t.Centro == centro && t.CierreID == nil {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTicketRepo) List(_ context.Context, centro string, fecha string) ([]model.Ticket, error) {
	var out []model.Ticket
	for _, t := range r.tickets {
		if t.Centro != centro {
			continue
		}
		if fecha != "" && t.CreatedAt.Format("2006-01-02") != fecha {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTicketRepo) NextNumero(_ context.Context, _ *gorm.DB, centro string) (int, error) {
	max := 0
	for _, t := range r.tickets {
		if t.Centro == centro && t.Numero > max {
			max = t.Numero
		}
	}
	return max + 1, nil
}

func (r *stubTicketRepo) ReemplazarItemsTx(_ *gorm.DB, t *model.Ticket, items []model.TicketItem) error {
	for i := range items {
		items[i].TicketID = t.ID
	}
	t.Items = items
	for i, existing := range r.tickets {
		if existing.ID == t.ID {
			r.tickets[i] = t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubTicketRepo) AsignarCierreTx(_ *gorm.DB, centro string, ticketIDs []uuid.UUID, cierreID uuid.UUID) error {
	for _, id := range ticketIDs {
		for _, t := range r.tickets {
			if t.Centro == centro && t.ID == id {
				cid := cierreID
				t.CierreID = &cid
			}
		}
	}
	return nil
}

// ── CierreRepository stub ────────────────────────────────────────────────────

type stubCierreRepo struct {
	cierres []*model.Cierre
}

func (r *stubCierreRepo) CreateTx(_ *gorm.DB, c *model.Cierre) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cierres = append(r.cierres, c)
	return nil
}

func (r *stubCierreRepo) FindByID(_ context.Context, centro string, id uuid.UUID) (*model.Cierre, error) {
	for _, c := range r.cierres {
		if c.Centro == centro && c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCierreRepo) List(_ context.Context, centro string) ([]model.Cierre, error) {
	var out []model.Cierre
	for _, c := range r.cierres {
		if c.Centro == centro {
			out = append(out, *c)
		}
	}
	return out, nil
}

// ── NotaCreditoRepository stub ───────────────────────────────────────────────

type stubNotaCreditoRepo struct {
	notas []*model.NotaCredito
}

func (r *stubNotaCreditoRepo) CreateTx(_ *gorm.DB, n *model.NotaCredito) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.notas = append(r.notas, n)
	return nil
}

func (r *stubNotaCreditoRepo) List(_ context.Context, centro string) ([]model.NotaCredito, error) {
	var out []model.NotaCredito
	for _, n := range r.notas {
		if n.Centro == centro {
			out = append(out, *n)
		}
	}
	return out, nil
}

// ── ActividadRepository stub ─────────────────────────────────────────────────

type stubActividadRepo struct {
	actividades map[uuid.UUID]*model.Actividad
}

func newStubActividadRepo() *stubActividadRepo {
	return &stubActividadRepo{actividades: make(map[uuid.UUID]*model.Actividad)}
}

func (r *stubActividadRepo) DB() *gorm.DB { return nil }

func (r *stubActividadRepo) Create(_ context.Context, a *model.Actividad) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.actividades[a.ID] = a
	return nil
}

func (r *stubActividadRepo) FindByID(_ context.Context, centro string, id uuid.UUID) (*model.Actividad, error) {
	a, ok := r.actividades[id]
	if !ok || a.Centro != centro {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubActividadRepo) ListEntreFechas(_ context.Context, centro string, desde, hasta time.Time) ([]model.Actividad, error) {
	var out []model.Actividad
	for _, a := range r.actividades {
		if a.Centro != centro {
			continue
		}
		if a.Fecha.Before(desde) || !a.Fecha.Before(hasta) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubActividadRepo) Update(_ context.Context, a *model.Actividad) error {
	r.actividades[a.ID] = a
	return nil
}

func (r *stubActividadRepo) Delete(_ context.Context, centro string, id uuid.UUID) error {
	delete(r.actividades, id)
	return nil
}

func (r *stubActividadRepo) AddAsistente(_ context.Context, as *model.AsistenteActividad) error {
	a, ok := r.actividades[as.ActividadID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Asistentes = append(a.Asistentes, *as)
	return nil
}

func (r *stubActividadRepo) Centros(_ context.Context) ([]string, error) {
	vistos := make(map[string]struct{})
	var out []string
	for _, a := range r.actividades {
		if _, ok := vistos[a.Centro]; ok {
			continue
		}
		vistos[a.Centro] = struct{}{}
		out = append(out, a.Centro)
	}
	return out, nil
}

// ── BonoRepository stub ──────────────────────────────────────────────────────

type stubBonoRepo struct {
	bonos map[uuid.UUID]*model.Bono
}

func newStubBonoRepo() *stubBonoRepo {
	return &stubBonoRepo{bonos: make(map[uuid.UUID]*model.Bono)}
}

func (r *stubBonoRepo) Create(_ context.Context, b *model.Bono) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bonos[b.ID] = b
	return nil
}

func (r *stubBonoRepo) FindByID(_ context.Context, centro string, id uuid.UUID) (*model.Bono, error) {
	b, ok := r.bonos[id]
	if !ok || b.Centro != centro {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBonoRepo) ListByCliente(_ context.Context, centro string, clienteID uuid.UUID) ([]model.Bono, error) {
	var out []model.Bono
	for _, b := range r.bonos {
		if b.Centro == centro && b.ClienteID == clienteID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBonoRepo) List(_ context.Context, centro string) ([]model.Bono, error) {
	var out []model.Bono
	for _, b := range r.bonos {
		if b.Centro == centro {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBonoRepo) Update(_ context.Context, b *model.Bono) error {
	r.bonos[b.ID] = b
	return nil
}

// ── Mailer stub (EmailEnqueuer + TicketMailer) ───────────────────────────────

type emailEncolado struct {
	To      string
	Subject string
	Body    string
}

type stubMailer struct {
	emails  []emailEncolado
	tickets []uuid.UUID
	fail    error
}

func (m *stubMailer) EnqueueEmail(_ context.Context, to, subject, body string) error {
	if m.fail != nil {
		return m.fail
	}
	m.emails = append(m.emails, emailEncolado{To: to, Subject: subject, Body: body})
	return nil
}

func (m *stubMailer) EnqueueTicketEmail(_ context.Context, _ string, ticketID uuid.UUID, _ string) error {
	if m.fail != nil {
		return m.fail
	}
	m.tickets = append(m.tickets, ticketID)
	return nil
}
