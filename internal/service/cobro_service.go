package service

import (
	"context"
	"errors"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const puntosPorCanje = 100

var metodosPago = map[string]struct{}{
	model.PagoEfectivo:      {},
	model.PagoTarjeta:       {},
	model.PagoBizum:         {},
	model.PagoTransferencia: {},
}

// TicketMailer queues a "send receipt by email" job for the worker pool.
type TicketMailer interface {
	EnqueueTicketEmail(ctx context.Context, centro string, ticketID uuid.UUID, to string) error
}

// CobroService drives the cashier flow: build the cart in its session store,
// optionally redeem loyalty points, then charge — which is the single moment
// a Ticket comes into existence.
type CobroService struct {
	store     CarritoStore
	productos repository.ProductoRepository
	clientes  repository.ClienteRepository
	tickets   repository.TicketRepository
	mailer    TicketMailer
	now       func() time.Time
}

func NewCobroService(
	store CarritoStore,
	productos repository.ProductoRepository,
	clientes repository.ClienteRepository,
	tickets repository.TicketRepository,
	mailer TicketMailer,
) *CobroService {
	return &CobroService{
		store:     store,
		productos: productos,
		clientes:  clientes,
		tickets:   tickets,
		mailer:    mailer,
		now:       time.Now,
	}
}

func (s *CobroService) VerCarrito(ctx context.Context, centro, cajero string) (*Carrito, error) {
	return s.store.Get(ctx, centro, cajero)
}

// AsignarCliente attaches a client to the session. Special prices apply to
// products added afterwards; lines already in the cart keep their price.
func (s *CobroService) AsignarCliente(ctx context.Context, centro, cajero string, clienteID *uuid.UUID) (*Carrito, error) {
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return nil, err
	}
	if clienteID != nil {
		if _, err := s.clientes.FindByID(ctx, centro, *clienteID); err != nil {
			return nil, err
		}
	}
	c.ClienteID = clienteID
	return c, s.store.Save(ctx, centro, cajero, c)
}

// AgregarProducto adds one unit of a catalog product, resolving the client's
// special price when a client is attached.
func (s *CobroService) AgregarProducto(ctx context.Context, centro, cajero string, productoID uuid.UUID) (*Carrito, error) {
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return nil, err
	}
	p, err := s.productos.FindByID(ctx, centro, productoID)
	if err != nil {
		return nil, err
	}

	var especial *model.PrecioEspecial
	if c.ClienteID != nil {
		pe, err := s.productos.FindPrecioEspecial(ctx, p.ID, *c.ClienteID)
		if err == nil {
			especial = pe
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	c.AgregarProducto(p, especial)
	return c, s.store.Save(ctx, centro, cajero, c)
}

func (s *CobroService) AgregarLineaManual(ctx context.Context, centro, cajero, nombre string, precio decimal.Decimal, cantidad int) (*Carrito, error) {
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return nil, err
	}
	if err := c.AgregarLineaManual(nombre, precio, cantidad); err != nil {
		return nil, err
	}
	return c, s.store.Save(ctx, centro, cajero, c)
}

func (s *CobroService) FijarDescuento(ctx context.Context, centro, cajero, productoRef string, pct decimal.Decimal) (*Carrito, error) {
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return nil, err
	}
	if err := c.FijarDescuentoLinea(productoRef, pct); err != nil {
		return nil, err
	}
	return c, s.store.Save(ctx, centro, cajero, c)
}

func (s *CobroService) QuitarLinea(ctx context.Context, centro, cajero, productoRef string) (*Carrito, error) {
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return nil, err
	}
	c.QuitarLinea(productoRef)
	return c, s.store.Save(ctx, centro, cajero, c)
}

// Vaciar discards the session. An active canje is refunded: the 100 points
// were deducted up front, and an abandoned cart must not cost the client.
func (s *CobroService) Vaciar(ctx context.Context, centro, cajero string) error {
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return err
	}
	if c.CanjeActivo && c.ClienteID != nil {
		err := runTx(s.clientes.DB(), func(tx *gorm.DB) error {
			return s.clientes.SumarPuntosTx(tx, *c.ClienteID, puntosPorCanje)
		})
		if err != nil {
			return err
		}
	}
	return s.store.Delete(ctx, centro, cajero)
}

// CanjearPuntos activates the 10% redemption discount. The 100 points come
// off the client's balance immediately, before the charge; the discount then
// applies when the cart is charged. One canje per cart.
func (s *CobroService) CanjearPuntos(ctx context.Context, centro, cajero string) (*Carrito, error) {
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return nil, err
	}
	if c.ClienteID == nil || c.CanjeActivo {
		return nil, ErrValidacion
	}
	cli, err := s.clientes.FindByID(ctx, centro, *c.ClienteID)
	if err != nil {
		return nil, err
	}
	if cli.Puntos < puntosPorCanje {
		return nil, ErrPuntosInsuficientes
	}

	err = runTx(s.clientes.DB(), func(tx *gorm.DB) error {
		return s.clientes.SumarPuntosTx(tx, cli.ID, -puntosPorCanje)
	})
	if err != nil {
		return nil, err
	}

	c.CanjeActivo = true
	if err := s.store.Save(ctx, centro, cajero, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Cobrar turns the session cart into a Ticket: per-centro sequential number,
// snapshot of the lines, total with the redemption discount applied, loyalty
// accrual of floor(total × 0.20) and one purchase-history row per line when a
// client is attached. The session is cleared on success.
func (s *CobroService) Cobrar(ctx context.Context, centro, cajero, metodoPago string) (*model.Ticket, error) {
	if cajero == "" {
		return nil, ErrValidacion
	}
	if _, ok := metodosPago[metodoPago]; !ok {
		return nil, ErrValidacion
	}
	c, err := s.store.Get(ctx, centro, cajero)
	if err != nil {
		return nil, err
	}
	if len(c.Lineas) == 0 {
		return nil, ErrValidacion
	}

	var cli *model.Cliente
	if c.ClienteID != nil {
		cli, err = s.clientes.FindByID(ctx, centro, *c.ClienteID)
		if err != nil {
			return nil, err
		}
	}

	ahora := s.now()
	total := c.Total()
	ticket := &model.Ticket{
		Centro:      centro,
		Cajero:      cajero,
		ClienteID:   c.ClienteID,
		MetodoPago:  metodoPago,
		Total:       total,
		CanjePuntos: c.CanjeActivo,
	}
	if cli != nil {
		ticket.ClienteNombre = &cli.Nombre
	}
	for _, l := range c.Lineas {
		ticket.Items = append(ticket.Items, model.TicketItem{
			ProductoRef:    l.ProductoRef,
			Nombre:         l.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			DescuentoPct:   l.DescuentoPct,
		})
	}

	err = runTx(s.tickets.DB(), func(tx *gorm.DB) error {
		num, err := s.tickets.NextNumero(ctx, tx, centro)
		if err != nil {
			return err
		}
		ticket.Numero = num
		if err := s.tickets.CreateTx(tx, ticket); err != nil {
			return err
		}
		if cli == nil {
			return nil
		}
		ganados := PuntosGanados(total)
		if ganados > 0 {
			if err := s.clientes.SumarPuntosTx(tx, cli.ID, ganados); err != nil {
				return err
			}
		}
		for _, l := range c.Lineas {
			compra := &model.Compra{
				ClienteID: cli.ID,
				Fecha:     ahora,
				Producto:  l.Nombre,
				Importe:   l.Subtotal(),
			}
			if err := s.clientes.AddCompraTx(tx, compra); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, centro, cajero); err != nil {
		// The charge is committed; a stale session is an inconvenience, not a failure.
		log.Warn().Err(err).Str("cajero", cajero).Msg("no se pudo limpiar el carrito tras el cobro")
	}
	return ticket, nil
}

// ListarTickets returns the centro's tickets, optionally filtered by day
// (fecha in YYYY-MM-DD).
func (s *CobroService) ListarTickets(ctx context.Context, centro, fecha string) ([]model.Ticket, error) {
	return s.tickets.List(ctx, centro, fecha)
}

func (s *CobroService) BuscarTicket(ctx context.Context, centro string, id uuid.UUID) (*model.Ticket, error) {
	return s.tickets.FindByID(ctx, centro, id)
}

// EnviarTicketPorEmail queues the receipt PDF for the attached client. Fails
// with ErrSinEmail when the ticket has no client or the client has no email.
func (s *CobroService) EnviarTicketPorEmail(ctx context.Context, centro string, ticketID uuid.UUID) error {
	t, err := s.tickets.FindByID(ctx, centro, ticketID)
	if err != nil {
		return err
	}
	if t.ClienteID == nil {
		return ErrSinEmail
	}
	cli, err := s.clientes.FindByID(ctx, centro, *t.ClienteID)
	if err != nil {
		return err
	}
	if cli.Email == nil || *cli.Email == "" {
		return ErrSinEmail
	}
	return s.mailer.EnqueueTicketEmail(ctx, centro, t.ID, *cli.Email)
}
