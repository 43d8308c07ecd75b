package handler

import (
	"net/http"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsuariosHandler struct{ svc service.UsuarioService }

func NewUsuariosHandler(svc service.UsuarioService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de usuario dentro del condominio
// @Tags usuarios
// @Router /v1/usuarios [post]
func (h *UsuariosHandler) Crear(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}

	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), condominioID, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrSinAsientos {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns the tenant's users together with the seat counters.
func (h *UsuariosHandler) Listar(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), condominioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar usuarios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), condominioID, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// estadoAction maps the three state transitions onto one handler shape: it
// resolves the caller's condominio and the target id, then responds with the
// mutated user plus the refreshed seat counters.
func (h *UsuariosHandler) estadoAction(c *gin.Context, fn func(condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error)) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := fn(condominioID, id)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrSinAsientos {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Bloquear(c *gin.Context) {
	h.estadoAction(c, func(condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error) {
		return h.svc.Bloquear(c.Request.Context(), condominioID, id)
	})
}

func (h *UsuariosHandler) Suspender(c *gin.Context) {
	h.estadoAction(c, func(condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error) {
		return h.svc.Suspender(c.Request.Context(), condominioID, id)
	})
}

func (h *UsuariosHandler) Reactivar(c *gin.Context) {
	h.estadoAction(c, func(condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error) {
		return h.svc.Reactivar(c.Request.Context(), condominioID, id)
	})
}

func (h *UsuariosHandler) Eliminar(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Eliminar(c.Request.Context(), condominioID, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
