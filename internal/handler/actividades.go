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

type ActividadesHandler struct{ svc *service.ActividadService }

func NewActividadesHandler(svc *service.ActividadService) *ActividadesHandler {
	return &ActividadesHandler{svc: svc}
}

func toActividadResponse(a *model.Actividad) dto.ActividadResponse {
	resp := dto.ActividadResponse{
		ID:         a.ID.String(),
		Nombre:     a.Nombre,
		Tipo:       a.Tipo,
		Fecha:      a.Fecha.Format("2006-01-02"),
		Hora:       a.Hora,
		Instructor: a.Instructor,
		Completada: a.Completada,
		Asistentes: []dto.AsistenteResponse{},
	}
	for _, as := range a.Asistentes {
		ar := dto.AsistenteResponse{ClienteID: as.ClienteID.String()}
		if as.Cliente != nil {
			ar.ClienteNombre = as.Cliente.Nombre
		}
		resp.Asistentes = append(resp.Asistentes, ar)
	}
	return resp
}

// Crear godoc
// @Summary      Programar actividad
// @Tags         actividades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearActividadRequest true "Actividad"
// @Success      201  {object} dto.ActividadResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/actividades [post]
func (h *ActividadesHandler) Crear(c *gin.Context) {
	var req dto.CrearActividadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida"))
		return
	}
	claims := middleware.GetClaims(c)
	a, err := h.svc.Crear(c.Request.Context(), claims.Centro, req.Nombre, req.Tipo, fecha, req.Hora, req.Instructor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toActividadResponse(a))
}

// ListarSemana godoc
// @Summary      Agenda semanal
// @Tags         actividades
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200 {array} dto.ActividadResponse
// @Router       /v1/actividades [get]
func (h *ActividadesHandler) ListarSemana(c *gin.Context) {
	desde := time.Now().Truncate(24 * time.Hour)
	if q := c.Query("desde"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Parametro desde invalido"))
			return
		}
		desde = parsed
	}
	claims := middleware.GetClaims(c)
	actividades, err := h.svc.ListarSemana(c.Request.Context(), claims.Centro, desde)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.ActividadResponse, len(actividades))
	for i := range actividades {
		resp[i] = toActividadResponse(&actividades[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar actividad
// @Tags         actividades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la actividad"
// @Param        body body dto.ActualizarActividadRequest true "Campos"
// @Success      200  {object} dto.ActividadResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/actividades/{id} [put]
func (h *ActividadesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarActividadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida"))
		return
	}
	claims := middleware.GetClaims(c)
	a, err := h.svc.Actualizar(c.Request.Context(), claims.Centro, id, req.Nombre, fecha, req.Hora, req.Instructor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toActividadResponse(a))
}

// Eliminar godoc
// @Summary      Eliminar actividad
// @Tags         actividades
// @Security     BearerAuth
// @Param        id path string true "UUID de la actividad"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/actividades/{id} [delete]
func (h *ActividadesHandler) Eliminar(c *gin.Context) {
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

// Apuntar godoc
// @Summary      Apuntar cliente a una actividad
// @Tags         actividades
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la actividad"
// @Param        body body dto.ApuntarAsistenteRequest true "Cliente"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/actividades/{id}/asistentes [post]
func (h *ActividadesHandler) Apuntar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ApuntarAsistenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Apuntar(c.Request.Context(), claims.Centro, id, clienteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Completar godoc
// @Summary      Completar actividad
// @Description  Para actividades de tipo curso, añade un curso realizado al historial de cada asistente.
// @Tags         actividades
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la actividad"
// @Success      200 {object} dto.ActividadResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/actividades/{id}/completar [post]
func (h *ActividadesHandler) Completar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	a, err := h.svc.Completar(c.Request.Context(), claims.Centro, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toActividadResponse(a))
}

// Recordatorios godoc
// @Summary      Componer recordatorios del día siguiente
// @Description  Devuelve el mensaje renderizado por asistente, con enlace wa.me si hay teléfono; encola el email si hay dirección.
// @Tags         actividades
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.RecordatorioResponse
// @Router       /v1/actividades/recordatorios [post]
func (h *ActividadesHandler) Recordatorios(c *gin.Context) {
	claims := middleware.GetClaims(c)
	recordatorios, err := h.svc.Recordatorios(c.Request.Context(), claims.Centro, time.Now().AddDate(0, 0, 1))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.RecordatorioResponse, len(recordatorios))
	for i, r := range recordatorios {
		resp[i] = dto.RecordatorioResponse{
			Cliente:       r.Cliente,
			Actividad:     r.Actividad,
			Hora:          r.Hora,
			Mensaje:       r.Mensaje,
			LinkWhatsApp:  r.LinkWhatsApp,
			EmailEncolado: r.EmailEncolado,
		}
	}
	c.JSON(http.StatusOK, resp)
}
