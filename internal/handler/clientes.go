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

type ClientesHandler struct{ svc *service.ClienteService }

func NewClientesHandler(svc *service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

func toClienteResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:       c.ID.String(),
		Nombre:   c.Nombre,
		Telefono: c.Telefono,
		Email:    c.Email,
		Puntos:   c.Puntos,
	}
}

// Crear godoc
// @Summary      Alta de cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearClienteRequest true "Datos del cliente"
// @Success      201  {object} dto.ClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cli, err := h.svc.Crear(c.Request.Context(), claims.Centro, req.Nombre, req.Telefono, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClienteResponse(cli))
}

// Listar godoc
// @Summary      Listar clientes del centro
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	clientes, err := h.svc.Listar(c.Request.Context(), claims.Centro)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = toClienteResponse(&clientes[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Ficha de cliente con compras y cursos
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del cliente"
// @Success      200 {object} dto.ClienteDetalleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/{id} [get]
func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	cli, err := h.svc.Buscar(c.Request.Context(), claims.Centro, id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ClienteDetalleResponse{ClienteResponse: toClienteResponse(cli)}
	for _, compra := range cli.Compras {
		resp.Compras = append(resp.Compras, dto.CompraResponse{
			Fecha:    compra.Fecha.Format(time.RFC3339),
			Producto: compra.Producto,
			Importe:  compra.Importe,
		})
	}
	for _, curso := range cli.Cursos {
		resp.Cursos = append(resp.Cursos, dto.CursoRealizadoResponse{
			Curso: curso.Curso,
			Fecha: curso.Fecha.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del cliente"
// @Param        body body dto.ActualizarClienteRequest true "Campos a actualizar"
// @Success      200  {object} dto.ClienteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/clientes/{id} [put]
func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cli, err := h.svc.Actualizar(c.Request.Context(), claims.Centro, id, req.Nombre, req.Telefono, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClienteResponse(cli))
}

// Eliminar godoc
// @Summary      Eliminar cliente
// @Tags         clientes
// @Security     BearerAuth
// @Param        id path string true "UUID del cliente"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/{id} [delete]
func (h *ClientesHandler) Eliminar(c *gin.Context) {
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

// RegistrarCurso godoc
// @Summary      Registrar curso realizado
// @Description  Añade un curso al historial del cliente; alimenta el motor de oportunidades.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del cliente"
// @Param        body body dto.RegistrarCursoRequest true "Curso y fecha"
// @Success      201  {object} dto.CursoRealizadoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/clientes/{id}/cursos [post]
func (h *ClientesHandler) RegistrarCurso(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RegistrarCursoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida"))
		return
	}
	claims := middleware.GetClaims(c)
	cr, err := h.svc.RegistrarCurso(c.Request.Context(), claims.Centro, id, req.Curso, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CursoRealizadoResponse{
		Curso: cr.Curso,
		Fecha: cr.Fecha.Format("2006-01-02"),
	})
}
