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

type GastosHandler struct{ svc *service.GastoService }

func NewGastosHandler(svc *service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

func toGastoResponse(g *model.Gasto) dto.GastoResponse {
	return dto.GastoResponse{
		ID:        g.ID.String(),
		Fecha:     g.Fecha.Format("2006-01-02"),
		Concepto:  g.Concepto,
		Categoria: g.Categoria,
		Importe:   g.Importe,
	}
}

// Crear godoc
// @Summary      Registrar gasto
// @Tags         gastos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearGastoRequest true "Gasto"
// @Success      201  {object} dto.GastoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/gastos [post]
func (h *GastosHandler) Crear(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida"))
		return
	}
	claims := middleware.GetClaims(c)
	g, err := h.svc.Crear(c.Request.Context(), claims.Centro, req.Concepto, req.Categoria, req.Importe, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGastoResponse(g))
}

// Listar godoc
// @Summary      Listar gastos
// @Tags         gastos
// @Produce      json
// @Security     BearerAuth
// @Param        mes query string false "Mes YYYY-MM"
// @Success      200 {array} dto.GastoResponse
// @Router       /v1/gastos [get]
func (h *GastosHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	gastos, err := h.svc.Listar(c.Request.Context(), claims.Centro, c.Query("mes"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.GastoResponse, len(gastos))
	for i := range gastos {
		resp[i] = toGastoResponse(&gastos[i])
	}
	c.JSON(http.StatusOK, resp)
}

// TotalMes godoc
// @Summary      Total de gastos de un mes
// @Tags         gastos
// @Produce      json
// @Security     BearerAuth
// @Param        mes query string true "Mes YYYY-MM"
// @Success      200 {object} dto.TotalMesResponse
// @Router       /v1/gastos/total [get]
func (h *GastosHandler) TotalMes(c *gin.Context) {
	mes := c.Query("mes")
	if mes == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro mes requerido (YYYY-MM)"))
		return
	}
	claims := middleware.GetClaims(c)
	total, err := h.svc.TotalMes(c.Request.Context(), claims.Centro, mes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalMesResponse{Mes: mes, Total: total})
}

// Actualizar godoc
// @Summary      Actualizar gasto
// @Tags         gastos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del gasto"
// @Param        body body dto.ActualizarGastoRequest true "Campos"
// @Success      200  {object} dto.GastoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/gastos/{id} [put]
func (h *GastosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida"))
		return
	}
	claims := middleware.GetClaims(c)
	g, err := h.svc.Actualizar(c.Request.Context(), claims.Centro, id, req.Concepto, req.Categoria, req.Importe, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGastoResponse(g))
}

// Eliminar godoc
// @Summary      Eliminar gasto
// @Tags         gastos
// @Security     BearerAuth
// @Param        id path string true "UUID del gasto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/gastos/{id} [delete]
func (h *GastosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Eliminar(c.Request.Context(), claims.Centro, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
