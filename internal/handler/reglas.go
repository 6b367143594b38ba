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

type ReglasHandler struct{ svc *service.ReglaService }

func NewReglasHandler(svc *service.ReglaService) *ReglasHandler { return &ReglasHandler{svc: svc} }

func toReglaResponse(r *model.ReglaOportunidad) dto.ReglaResponse {
	return dto.ReglaResponse{
		ID:            r.ID.String(),
		CursoBase:     r.CursoBase,
		DiasMinimos:   r.DiasMinimos,
		Recomendacion: r.Recomendacion,
		Mensaje:       r.Mensaje,
	}
}

// Crear godoc
// @Summary      Crear regla de oportunidad
// @Description  Clientes con el curso base completado hace al menos dias_minimos días generan una oportunidad con la recomendación.
// @Tags         reglas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearReglaRequest true "Regla"
// @Success      201  {object} dto.ReglaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reglas [post]
func (h *ReglasHandler) Crear(c *gin.Context) {
	var req dto.CrearReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	r, err := h.svc.Crear(c.Request.Context(), claims.Centro, req.CursoBase, req.DiasMinimos, req.Recomendacion, req.Mensaje)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReglaResponse(r))
}

// Listar godoc
// @Summary      Listar reglas del centro
// @Tags         reglas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ReglaResponse
// @Router       /v1/reglas [get]
func (h *ReglasHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	reglas, err := h.svc.Listar(c.Request.Context(), claims.Centro)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.ReglaResponse, len(reglas))
	for i := range reglas {
		resp[i] = toReglaResponse(&reglas[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar regla
// @Tags         reglas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la regla"
// @Param        body body dto.ActualizarReglaRequest true "Campos"
// @Success      200  {object} dto.ReglaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/reglas/{id} [put]
func (h *ReglasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	r, err := h.svc.Actualizar(c.Request.Context(), claims.Centro, id, req.CursoBase, req.DiasMinimos, req.Recomendacion, req.Mensaje)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReglaResponse(r))
}

// Eliminar godoc
// @Summary      Eliminar regla
// @Tags         reglas
// @Security     BearerAuth
// @Param        id path string true "UUID de la regla"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reglas/{id} [delete]
func (h *ReglasHandler) Eliminar(c *gin.Context) {
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
