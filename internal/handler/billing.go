package handler

import (
	"net/http"
	"strconv"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/billing"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/service"
	"github.com/GenturixHub/Genturix-sub003/internal/wizard"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct{ svc service.BillingService }

func NewBillingHandler(svc service.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

// Preview godoc
// @Summary Cotiza asientos y ciclo; usa el motor de precios o el fallback local
// @Tags billing
// @Param seats query int true "Cantidad de asientos"
// @Param cycle query string true "monthly | yearly"
// @Success 200 {object} dto.PreviewResponse
// @Router /v1/billing/preview [get]
func (h *BillingHandler) Preview(c *gin.Context) {
	seats, err := strconv.Atoi(c.Query("seats"))
	if err != nil || seats < wizard.MinSeats || seats > wizard.MaxSeats {
		c.JSON(http.StatusBadRequest, apierror.New("Cantidad de asientos invalida"))
		return
	}
	cycle, err := billing.ParseCycle(c.Query("cycle"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Ciclo de facturacion invalido"))
		return
	}

	p := h.svc.Preview(c.Request.Context(), seats, cycle)
	c.JSON(http.StatusOK, dto.PreviewResponse{
		Seats:           seats,
		Cycle:           string(cycle),
		PricePerSeat:    p.PricePerSeat,
		MonthlyAmount:   p.MonthlyAmount,
		EffectiveAmount: p.EffectiveAmount,
		DiscountPercent: p.DiscountPercent,
		Savings:         p.Savings,
		Source:          p.Source,
	})
}

func (h *BillingHandler) GetSuscripcion(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.GetSuscripcion(c.Request.Context(), condominioID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) ActualizarSuscripcion(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	var req dto.ActualizarSuscripcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarSuscripcion(c.Request.Context(), condominioID, req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
