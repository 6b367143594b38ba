package handler

import (
	"encoding/json"
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

type CajaHandler struct{ svc *service.CajaService }

func NewCajaHandler(svc *service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

func toCierreResponse(cierre *model.Cierre) dto.CierreResponse {
	return dto.CierreResponse{
		ID:             cierre.ID.String(),
		Cajero:         cierre.Cajero,
		NumTickets:     cierre.NumTickets,
		TotalFacturado: cierre.TotalFacturado,
		TotalEfectivo:  cierre.TotalEfectivo,
		TotalOtros:     cierre.TotalOtros,
		CreatedAt:      cierre.CreatedAt.Format(time.RFC3339),
	}
}

// CerrarCaja godoc
// @Summary      Cerrar caja
// @Description  Archiva atómicamente todos los tickets abiertos en un cierre inmutable con copia profunda; el conjunto abierto queda vacío.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} dto.CierreResponse
// @Router       /v1/caja/cierre [post]
func (h *CajaHandler) CerrarCaja(c *gin.Context) {
	claims := middleware.GetClaims(c)
	cierre, err := h.svc.CerrarCaja(c.Request.Context(), claims.Centro, claims.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCierreResponse(cierre))
}

// ListarCierres godoc
// @Summary      Listar cierres de caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CierreResponse
// @Router       /v1/caja/cierres [get]
func (h *CajaHandler) ListarCierres(c *gin.Context) {
	claims := middleware.GetClaims(c)
	cierres, err := h.svc.ListarCierres(c.Request.Context(), claims.Centro)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.CierreResponse, len(cierres))
	for i := range cierres {
		resp[i] = toCierreResponse(&cierres[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerCierre godoc
// @Summary      Detalle de un cierre con su copia de tickets
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del cierre"
// @Success      200 {object} dto.CierreDetalleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caja/cierres/{id} [get]
func (h *CajaHandler) ObtenerCierre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	cierre, err := h.svc.BuscarCierre(c.Request.Context(), claims.Centro, id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CierreDetalleResponse{CierreResponse: toCierreResponse(cierre)}
	var tickets []model.Ticket
	if len(cierre.TicketsJSON) > 0 {
		if err := json.Unmarshal(cierre.TicketsJSON, &tickets); err == nil {
			for i := range tickets {
				resp.Tickets = append(resp.Tickets, toTicketResponse(&tickets[i]))
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}
