package service

import (
	"strings"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	cien         = decimal.NewFromInt(100)
	pctDescuento = decimal.NewFromFloat(0.10) // 10% off when points are redeemed
	tasaPuntos   = decimal.NewFromFloat(0.20) // points earned: floor(total * 0.20)
)

// LineaCarrito is one cart line. PrecioUnitario is the resolved custom price
// (base, or the client's special price); DescuentoPct is the additional
// manual discount, orthogonal to special pricing — both stack.
type LineaCarrito struct {
	ProductoRef    string          `json:"producto_ref"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
}

// Subtotal is precio × cantidad × (1 − descuento/100), computed fresh.
func (l LineaCarrito) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.
		Mul(decimal.NewFromInt(int64(l.Cantidad))).
		Mul(cien.Sub(l.DescuentoPct)).Div(cien)
}

// Carrito is the in-memory (session-stored) building cart. It has no
// persisted identity; it becomes a Ticket exactly once, at Cobrar time.
type Carrito struct {
	Lineas      []LineaCarrito `json:"lineas"`
	ClienteID   *uuid.UUID     `json:"cliente_id,omitempty"`
	CanjeActivo bool           `json:"canje_activo"`
}

// AgregarProducto adds a catalog product: if the product is already in the
// cart its quantity goes up by one, otherwise a new line is appended with
// the resolved unit price and DescuentoPct 0. An absolute special price wins
// over a percentage special discount, which wins over the base price.
func (c *Carrito) AgregarProducto(p *model.Producto, especial *model.PrecioEspecial) {
	ref := p.ID.String()
	for i := range c.Lineas {
		if c.Lineas[i].ProductoRef == ref {
			c.Lineas[i].Cantidad++
			return
		}
	}

	precio := p.Precio
	if especial != nil {
		switch {
		case especial.PrecioFijo != nil:
			precio = *especial.PrecioFijo
		case especial.DescuentoPct != nil:
			precio = p.Precio.Mul(cien.Sub(*especial.DescuentoPct)).Div(cien)
		}
	}

	c.Lineas = append(c.Lineas, LineaCarrito{
		ProductoRef:    ref,
		Nombre:         p.Nombre,
		Cantidad:       1,
		PrecioUnitario: precio,
		DescuentoPct:   decimal.Zero,
	})
}

// AgregarLineaManual appends an ad-hoc line (no catalog product). Fails with
// ErrValidacion when the name is empty, the price is not positive, or the
// quantity is not a positive integer.
func (c *Carrito) AgregarLineaManual(nombre string, precio decimal.Decimal, cantidad int) error {
	if strings.TrimSpace(nombre) == "" || !precio.IsPositive() || cantidad < 1 {
		return ErrValidacion
	}
	c.Lineas = append(c.Lineas, LineaCarrito{
		ProductoRef:    "manual-" + uuid.NewString(),
		Nombre:         strings.TrimSpace(nombre),
		Cantidad:       cantidad,
		PrecioUnitario: precio,
		DescuentoPct:   decimal.Zero,
	})
	return nil
}

// FijarDescuentoLinea sets the manual discount percentage on a line.
func (c *Carrito) FijarDescuentoLinea(productoRef string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(cien) {
		return ErrValidacion
	}
	for i := range c.Lineas {
		if c.Lineas[i].ProductoRef == productoRef {
			c.Lineas[i].DescuentoPct = pct
			return nil
		}
	}
	return ErrValidacion
}

// QuitarLinea removes a line from the cart.
func (c *Carrito) QuitarLinea(productoRef string) {
	for i := range c.Lineas {
		if c.Lineas[i].ProductoRef == productoRef {
			c.Lineas = append(c.Lineas[:i], c.Lineas[i+1:]...)
			return
		}
	}
}

// Subtotal is the sum of line subtotals before the redemption discount.
func (c *Carrito) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range c.Lineas {
		subtotal = subtotal.Add(l.Subtotal())
	}
	return subtotal
}

// Total applies the 10% redemption discount when a canje is active. Always
// recomputed from the lines; nothing is cached.
func (c *Carrito) Total() decimal.Decimal {
	subtotal := c.Subtotal()
	if c.CanjeActivo {
		return subtotal.Sub(subtotal.Mul(pctDescuento))
	}
	return subtotal
}

// PuntosGanados is floor(total × 0.20) — computed on the post-redemption
// total, so redeeming points reduces the base that earns new points.
// Historical behavior, kept deliberately.
func PuntosGanados(total decimal.Decimal) int {
	return int(total.Mul(tasaPuntos).Floor().IntPart())
}
