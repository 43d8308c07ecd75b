package handler

import (
	"errors"
	"net/http"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler {
	return &PagosHandler{svc: svc}
}

// Checkout godoc
// @Summary Inicia un pago en la pasarela y devuelve la URL de redireccion
// @Tags pagos
// @Router /v1/pagos/checkout [post]
func (h *PagosHandler) Checkout(c *gin.Context) {
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
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), condominioID, usuarioID, req)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrModuloPagosInactivo) {
			status = http.StatusForbidden
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PagosHandler) Get(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.GetPago(c.Request.Context(), usuarioID, c.Param("referencia"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PagosHandler) Listar(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook receives the gateway's server-to-server notification. It sits
// outside JWT auth; the gateway authenticates with its shared key.
func (h *PagosHandler) Webhook(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey != "" && c.GetHeader("X-Gateway-Key") != apiKey {
			c.JSON(http.StatusUnauthorized, apierror.New("Firma invalida"))
			return
		}
		var req dto.GatewayWebhookRequest
		if !bindAndValidate(c, &req) {
			return
		}
		if err := h.svc.ProcessWebhook(c.Request.Context(), req); err != nil {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Status(http.StatusOK)
	}
}
