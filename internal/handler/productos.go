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

type ProductosHandler struct{ svc *service.ProductoService }

func NewProductosHandler(svc *service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func toProductoResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Categoria: p.Categoria,
		Precio:    p.Precio,
		Activo:    p.Activo,
	}
}

// Crear godoc
// @Summary      Alta de producto en el catálogo
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Datos del producto"
// @Success      201  {object} dto.ProductoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	p, err := h.svc.Crear(c.Request.Context(), claims.Centro, req.Nombre, req.Categoria, req.Precio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductoResponse(p))
}

// Listar godoc
// @Summary      Listar catálogo
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        todos query bool false "Incluir productos desactivados"
// @Success      200 {array} dto.ProductoResponse
// @Router       /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	soloActivos := c.Query("todos") != "true"
	productos, err := h.svc.Listar(c.Request.Context(), claims.Centro, soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = toProductoResponse(&productos[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Campos a actualizar"
// @Success      200  {object} dto.ProductoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	p, err := h.svc.Actualizar(c.Request.Context(), claims.Centro, id, req.Nombre, req.Categoria, req.Precio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductoResponse(p))
}

// Desactivar godoc
// @Summary      Desactivar producto
// @Tags         productos
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [delete]
func (h *ProductosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Desactivar(c.Request.Context(), claims.Centro, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FijarPrecioEspecial godoc
// @Summary      Fijar precio especial por cliente
// @Description  Precio fijo o descuento porcentual para un cliente concreto; exactamente uno de los dos.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del producto"
// @Param        body body dto.PrecioEspecialRequest true "Precio fijo o descuento"
// @Success      200  {object} dto.PrecioEspecialResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/productos/{id}/precio-especial [put]
func (h *ProductosHandler) FijarPrecioEspecial(c *gin.Context) {
	productoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.PrecioEspecialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	pe, err := h.svc.FijarPrecioEspecial(c.Request.Context(), claims.Centro, productoID, clienteID, req.PrecioFijo, req.DescuentoPct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PrecioEspecialResponse{
		ProductoID:   pe.ProductoID.String(),
		ClienteID:    pe.ClienteID.String(),
		PrecioFijo:   pe.PrecioFijo,
		DescuentoPct: pe.DescuentoPct,
	})
}
