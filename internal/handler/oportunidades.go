package handler

import (
	"net/http"
	"time"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/dto"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/middleware"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/model"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OportunidadesHandler struct{ svc *service.OportunidadService }

func NewOportunidadesHandler(svc *service.OportunidadService) *OportunidadesHandler {
	return &OportunidadesHandler{svc: svc}
}

func toOportunidadResponse(o *model.Oportunidad) dto.OportunidadResponse {
	resp := dto.OportunidadResponse{
		Cliente:       o.ClienteNombre,
		Curso:         o.Curso,
		Recomendacion: o.Recomendacion,
		FechaCurso:    o.FechaCurso.Format("2006-01-02"),
		Dias:          o.Dias,
		Mensaje:       o.Mensaje,
		Estado:        o.Estado,
		Comentarios:   o.Comentarios,
		Persistida:    o.ID != uuid.Nil,
		Historial:     []dto.HistorialEntryResponse{},
	}
	if o.FechaUltimoContacto != nil {
		s := o.FechaUltimoContacto.Format(time.RFC3339)
		resp.FechaUltimoContacto = &s
	}
	for _, h := range o.Historial {
		resp.Historial = append(resp.Historial, dto.HistorialEntryResponse{
			Accion:     h.Accion,
			Fecha:      h.Fecha.Format(time.RFC3339),
			Comentario: h.Comentario,
		})
	}
	return resp
}

func clave(req dto.ClaveOportunidadRequest) model.ClaveOportunidad {
	return model.ClaveOportunidad{
		ClienteNombre: req.Cliente,
		Curso:         req.Curso,
		Recomendacion: req.Recomendacion,
	}
}

// Listar godoc
// @Summary      Listar oportunidades
// @Description  Combina las oportunidades persistidas (primero, en orden de inserción) con las candidatas derivadas de las reglas. Los días se recalculan en cada lectura.
// @Tags         oportunidades
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.OportunidadResponse
// @Router       /v1/oportunidades [get]
func (h *OportunidadesHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	opps, err := h.svc.Listar(c.Request.Context(), claims.Centro)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.OportunidadResponse, len(opps))
	for i := range opps {
		resp[i] = toOportunidadResponse(&opps[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary      Cambiar estado de una oportunidad
// @Description  Materializa la candidata si aún no existe y añade siempre una entrada al historial.
// @Tags         oportunidades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CambiarEstadoRequest true "Clave y nuevo estado"
// @Success      200  {object} dto.OportunidadResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/oportunidades/estado [put]
func (h *OportunidadesHandler) CambiarEstado(c *gin.Context) {
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	o, err := h.svc.CambiarEstado(c.Request.Context(), claims.Centro, clave(req.ClaveOportunidadRequest), req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOportunidadResponse(o))
}

// Comentar godoc
// @Summary      Comentar una oportunidad
// @Description  Sustituye el comentario libre. No genera entrada de historial.
// @Tags         oportunidades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ComentarOportunidadRequest true "Clave y comentario"
// @Success      200  {object} dto.OportunidadResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/oportunidades/comentario [put]
func (h *OportunidadesHandler) Comentar(c *gin.Context) {
	var req dto.ComentarOportunidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	o, err := h.svc.Comentar(c.Request.Context(), claims.Centro, clave(req.ClaveOportunidadRequest), req.Comentarios)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOportunidadResponse(o))
}

// Contactar godoc
// @Summary      Contactar al cliente de una oportunidad
// @Description  Canal whatsapp: devuelve el enlace wa.me con el mensaje renderizado. Canal email: encola el envío. En ambos casos la oportunidad pasa a contactado.
// @Tags         oportunidades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ContactarOportunidadRequest true "Clave y canal"
// @Success      200  {object} dto.ContactarOportunidadResponse
// @Failure      409  {object} apierror.APIError "Sin teléfono o sin email"
// @Router       /v1/oportunidades/contactar [post]
func (h *OportunidadesHandler) Contactar(c *gin.Context) {
	var req dto.ContactarOportunidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	k := clave(req.ClaveOportunidadRequest)

	var resp dto.ContactarOportunidadResponse
	switch req.Canal {
	case "whatsapp":
		link, o, err := h.svc.ContactarWhatsApp(c.Request.Context(), claims.Centro, k)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Oportunidad = toOportunidadResponse(o)
		resp.LinkWhatsApp = link
	case "email":
		o, err := h.svc.ContactarEmail(c.Request.Context(), claims.Centro, k)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Oportunidad = toOportunidadResponse(o)
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar una oportunidad descartada
// @Description  Solo se pueden eliminar oportunidades en estado descartado.
// @Tags         oportunidades
// @Accept       json
// @Security     BearerAuth
// @Param        body body dto.ClaveOportunidadRequest true "Clave"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/oportunidades [delete]
func (h *OportunidadesHandler) Eliminar(c *gin.Context) {
	var req dto.ClaveOportunidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Eliminar(c.Request.Context(), claims.Centro, clave(req)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
