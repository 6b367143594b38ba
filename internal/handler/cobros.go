package handler

import (
	"net/http"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/apierror"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/dto"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/middleware"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CobrosHandler drives the cashier flow: the cart session is keyed by
// (centro, username) from the JWT, so every cashier builds their own cart.
type CobrosHandler struct{ svc *service.CobroService }

func NewCobrosHandler(svc *service.CobroService) *CobrosHandler { return &CobrosHandler{svc: svc} }

func toCarritoResponse(carrito *service.Carrito) dto.CarritoResponse {
	resp := dto.CarritoResponse{
		Lineas:      []dto.LineaCarritoResponse{},
		CanjeActivo: carrito.CanjeActivo,
		Subtotal:    carrito.Subtotal(),
		Total:       carrito.Total(),
	}
	if carrito.ClienteID != nil {
		s := carrito.ClienteID.String()
		resp.ClienteID = &s
	}
	for _, l := range carrito.Lineas {
		resp.Lineas = append(resp.Lineas, dto.LineaCarritoResponse{
			ProductoRef:    l.ProductoRef,
			Nombre:         l.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			DescuentoPct:   l.DescuentoPct,
			Subtotal:       l.Subtotal(),
		})
	}
	return resp
}

func toTicketResponse(t *model.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:            t.ID.String(),
		Numero:        t.Numero,
		Cajero:        t.Cajero,
		ClienteNombre: t.ClienteNombre,
		MetodoPago:    t.MetodoPago,
		Total:         t.Total,
		CanjePuntos:   t.CanjePuntos,
		Items:         []dto.TicketItemResponse{},
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
	if t.ClienteID != nil {
		s := t.ClienteID.String()
		resp.ClienteID = &s
	}
	if t.CierreID != nil {
		s := t.CierreID.String()
		resp.CierreID = &s
	}
	for _, item := range t.Items {
		resp.Items = append(resp.Items, dto.TicketItemResponse{
			ProductoRef:    item.ProductoRef,
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			DescuentoPct:   item.DescuentoPct,
		})
	}
	return resp
}

// VerCarrito godoc
// @Summary      Ver el carrito en curso
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CarritoResponse
// @Router       /v1/carrito [get]
func (h *CobrosHandler) VerCarrito(c *gin.Context) {
	claims := middleware.GetClaims(c)
	carrito, err := h.svc.VerCarrito(c.Request.Context(), claims.Centro, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarritoResponse(carrito))
}

// AgregarProducto godoc
// @Summary      Añadir producto del catálogo al carrito
// @Description  Si el producto ya está en el carrito suma una unidad. Aplica el precio especial del cliente asignado si existe.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AgregarProductoRequest true "Producto"
// @Success      200  {object} dto.CarritoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/carrito/productos [post]
func (h *CobrosHandler) AgregarProducto(c *gin.Context) {
	var req dto.AgregarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	carrito, err := h.svc.AgregarProducto(c.Request.Context(), claims.Centro, claims.Username, productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarritoResponse(carrito))
}

// AgregarLineaManual godoc
// @Summary      Añadir línea manual al carrito
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AgregarLineaManualRequest true "Línea manual"
// @Success      200  {object} dto.CarritoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/carrito/lineas [post]
func (h *CobrosHandler) AgregarLineaManual(c *gin.Context) {
	var req dto.AgregarLineaManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	carrito, err := h.svc.AgregarLineaManual(c.Request.Context(), claims.Centro, claims.Username, req.Nombre, req.Precio, req.Cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarritoResponse(carrito))
}

// FijarDescuento godoc
// @Summary      Fijar descuento porcentual en una línea
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DescuentoLineaRequest true "Línea y descuento"
// @Success      200  {object} dto.CarritoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/carrito/descuento [put]
func (h *CobrosHandler) FijarDescuento(c *gin.Context) {
	var req dto.DescuentoLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	carrito, err := h.svc.FijarDescuento(c.Request.Context(), claims.Centro, claims.Username, req.ProductoRef, req.DescuentoPct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarritoResponse(carrito))
}

// QuitarLinea godoc
// @Summary      Quitar una línea del carrito
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.QuitarLineaRequest true "Línea"
// @Success      200  {object} dto.CarritoResponse
// @Router       /v1/carrito/lineas [delete]
func (h *CobrosHandler) QuitarLinea(c *gin.Context) {
	var req dto.QuitarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	carrito, err := h.svc.QuitarLinea(c.Request.Context(), claims.Centro, claims.Username, req.ProductoRef)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarritoResponse(carrito))
}

// AsignarCliente godoc
// @Summary      Asignar (o desasignar) cliente al carrito
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AsignarClienteRequest true "Cliente"
// @Success      200  {object} dto.CarritoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/carrito/cliente [put]
func (h *CobrosHandler) AsignarCliente(c *gin.Context) {
	var req dto.AsignarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cliente_id invalido"))
			return
		}
		clienteID = &id
	}
	claims := middleware.GetClaims(c)
	carrito, err := h.svc.AsignarCliente(c.Request.Context(), claims.Centro, claims.Username, clienteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarritoResponse(carrito))
}

// Vaciar godoc
// @Summary      Vaciar el carrito
// @Description  Descarta la sesión. Si había un canje activo, los 100 puntos se devuelven al cliente.
// @Tags         carrito
// @Security     BearerAuth
// @Success      204
// @Router       /v1/carrito [delete]
func (h *CobrosHandler) Vaciar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Vaciar(c.Request.Context(), claims.Centro, claims.Username); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CanjearPuntos godoc
// @Summary      Canjear 100 puntos por un 10% de descuento
// @Description  Descuenta 100 puntos inmediatamente y activa el 10% sobre el total del carrito.
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CarritoResponse
// @Failure      409 {object} apierror.APIError "Puntos insuficientes"
// @Router       /v1/carrito/canje [post]
func (h *CobrosHandler) CanjearPuntos(c *gin.Context) {
	claims := middleware.GetClaims(c)
	carrito, err := h.svc.CanjearPuntos(c.Request.Context(), claims.Centro, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarritoResponse(carrito))
}

// Cobrar godoc
// @Summary      Cobrar el carrito
// @Description  Convierte el carrito en un Ticket inmutable: numeración secuencial por centro, acumulación de puntos y líneas de compra del cliente, todo en una transacción.
// @Tags         cobros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CobrarRequest true "Método de pago"
// @Success      201  {object} dto.TicketResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cobros [post]
func (h *CobrosHandler) Cobrar(c *gin.Context) {
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	t, err := h.svc.Cobrar(c.Request.Context(), claims.Centro, claims.Username, req.MetodoPago)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTicketResponse(t))
}

// ListarTickets godoc
// @Summary      Listar tickets
// @Tags         cobros
// @Produce      json
// @Security     BearerAuth
// @Param        fecha query string false "Fecha YYYY-MM-DD"
// @Success      200 {array} dto.TicketResponse
// @Router       /v1/tickets [get]
func (h *CobrosHandler) ListarTickets(c *gin.Context) {
	claims := middleware.GetClaims(c)
	tickets, err := h.svc.ListarTickets(c.Request.Context(), claims.Centro, c.Query("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = toTicketResponse(&tickets[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerTicket godoc
// @Summary      Detalle de un ticket
// @Tags         cobros
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del ticket"
// @Success      200 {object} dto.TicketResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/tickets/{id} [get]
func (h *CobrosHandler) ObtenerTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	t, err := h.svc.BuscarTicket(c.Request.Context(), claims.Centro, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(t))
}

// EnviarTicketEmail godoc
// @Summary      Enviar el recibo PDF por email
// @Tags         cobros
// @Security     BearerAuth
// @Param        id path string true "UUID del ticket"
// @Success      202
// @Failure      409 {object} apierror.APIError "El cliente no tiene email"
// @Router       /v1/tickets/{id}/email [post]
func (h *CobrosHandler) EnviarTicketEmail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.EnviarTicketPorEmail(c.Request.Context(), claims.Centro, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
