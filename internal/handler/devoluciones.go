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

type DevolucionesHandler struct{ svc *service.DevolucionService }

func NewDevolucionesHandler(svc *service.DevolucionService) *DevolucionesHandler {
	return &DevolucionesHandler{svc: svc}
}

func toNotaCreditoResponse(n *model.NotaCredito) dto.NotaCreditoResponse {
	resp := dto.NotaCreditoResponse{
		ID:        n.ID.String(),
		TicketID:  n.TicketID.String(),
		Total:     n.Total,
		Items:     []dto.NotaCreditoItemResponse{},
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range n.Items {
		resp.Items = append(resp.Items, dto.NotaCreditoItemResponse{
			ProductoRef: item.ProductoRef,
			Nombre:      item.Nombre,
			Cantidad:    item.Cantidad,
			Importe:     item.Importe,
		})
	}
	return resp
}

// Procesar godoc
// @Summary      Procesar una devolución
// @Description  Emite una nota de crédito inmutable (importe sin descuento de línea) y reescribe las líneas restantes del ticket en la misma transacción.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DevolucionRequest true "Ticket y cantidades por línea"
// @Success      201  {object} dto.NotaCreditoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/devoluciones [post]
func (h *DevolucionesHandler) Procesar(c *gin.Context) {
	var req dto.DevolucionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ticket_id invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	nota, err := h.svc.ProcesarDevolucion(c.Request.Context(), claims.Centro, ticketID, req.Cantidades)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNotaCreditoResponse(nota))
}

// Listar godoc
// @Summary      Listar notas de crédito
// @Tags         devoluciones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.NotaCreditoResponse
// @Router       /v1/devoluciones [get]
func (h *DevolucionesHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	notas, err := h.svc.ListarNotas(c.Request.Context(), claims.Centro)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.NotaCreditoResponse, len(notas))
	for i := range notas {
		resp[i] = toNotaCreditoResponse(&notas[i])
	}
	c.JSON(http.StatusOK, resp)
}
