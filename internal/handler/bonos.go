package handler

import (
	"net/http"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/apierror"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/dto"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/middleware"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BonosHandler struct{ svc *service.BonoService }

func NewBonosHandler(svc *service.BonoService) *BonosHandler { return &BonosHandler{svc: svc} }

func toBonoResponse(b *model.Bono) dto.BonoResponse {
	resp := dto.BonoResponse{
		ID:              b.ID.String(),
		ClienteID:       b.ClienteID.String(),
		Tipo:            b.Tipo,
		CreditosTotales: b.CreditosTotales,
		CreditosUsados:  b.CreditosUsados,
	}
	if b.Cliente != nil {
		resp.ClienteNombre = b.Cliente.Nombre
	}
	return resp
}

// Crear godoc
// @Summary      Crear bono de créditos
// @Tags         bonos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearBonoRequest true "Bono"
// @Success      201  {object} dto.BonoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/bonos [post]
func (h *BonosHandler) Crear(c *gin.Context) {
	var req dto.CrearBonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	b, err := h.svc.Crear(c.Request.Context(), claims.Centro, clienteID, req.Tipo, req.Creditos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBonoResponse(b))
}

// Listar godoc
// @Summary      Listar bonos del centro
// @Tags         bonos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.BonoResponse
// @Router       /v1/bonos [get]
func (h *BonosHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	bonos, err := h.svc.Listar(c.Request.Context(), claims.Centro)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.BonoResponse, len(bonos))
	for i := range bonos {
		resp[i] = toBonoResponse(&bonos[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Consumir godoc
// @Summary      Consumir créditos de un bono
// @Description  Falla si la cantidad supera los créditos restantes.
// @Tags         bonos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del bono"
// @Param        body body dto.ConsumirCreditoRequest true "Cantidad"
// @Success      200  {object} dto.BonoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/bonos/{id}/consumir [post]
func (h *BonosHandler) Consumir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ConsumirCreditoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	b, err := h.svc.ConsumirCredito(c.Request.Context(), claims.Centro, id, req.Cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBonoResponse(b))
}
