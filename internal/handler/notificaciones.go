package handler

import (
	"net/http"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificacionesHandler struct{ svc service.NotificacionService }

func NewNotificacionesHandler(svc service.NotificacionService) *NotificacionesHandler {
	return &NotificacionesHandler{svc: svc}
}

func (h *NotificacionesHandler) Listar(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar notificaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarcarLeida is safe to repeat: marking an already-read row is a no-op.
func (h *NotificacionesHandler) MarcarLeida(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.MarcarLeida(c.Request.Context(), usuarioID, id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificacionesHandler) MarcarTodasLeidas(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	if err := h.svc.MarcarTodasLeidas(c.Request.Context(), usuarioID); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al marcar notificaciones"))
		return
	}
	c.Status(http.StatusNoContent)
}
