package handler

import (
	"errors"
	"net/http"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

type ReservasHandler struct{ svc service.ReservaService }

func NewReservasHandler(svc service.ReservaService) *ReservasHandler {
	return &ReservasHandler{svc: svc}
}

func (h *ReservasHandler) CrearArea(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	var req dto.CrearAreaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearArea(c.Request.Context(), condominioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReservasHandler) ListarAreas(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarAreas(c.Request.Context(), condominioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar areas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservasHandler) DesactivarArea(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	areaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarArea(c.Request.Context(), condominioID, areaID); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// CrearReserva godoc
// @Summary Reserva un area comun; los choques de horario se rechazan con 409
// @Tags reservas
// @Router /v1/reservas [post]
func (h *ReservasHandler) CrearReserva(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	var req dto.CrearReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearReserva(c.Request.Context(), condominioID, usuarioID, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrHorarioOcupado) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReservasHandler) ListarReservas(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.ListarReservas(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar reservas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservasHandler) Cancelar(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	reservaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), usuarioID, reservaID); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
