package handler

import (
	"errors"
	"net/http"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/middleware"
	"github.com/GenturixHub/Genturix-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

// OnboardingHandler exposes the SuperAdmin tenant-creation wizard. The draft
// lives server side keyed by the operator, so any device restores it.
type OnboardingHandler struct{ svc service.OnboardingService }

func NewOnboardingHandler(svc service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

func operatorID(c *gin.Context) string {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

func (h *OnboardingHandler) GetDraft(c *gin.Context) {
	resp, err := h.svc.GetDraft(c.Request.Context(), operatorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al recuperar el borrador"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) SaveDraft(c *gin.Context) {
	var req dto.SaveDraftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SaveDraft(c.Request.Context(), operatorID(c), req.Draft); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OnboardingHandler) Advance(c *gin.Context) {
	resp, err := h.svc.Advance(c.Request.Context(), operatorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) Retreat(c *gin.Context) {
	resp, err := h.svc.Retreat(c.Request.Context(), operatorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) Cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), operatorID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al descartar el borrador"))
		return
	}
	c.Status(http.StatusNoContent)
}

// ValidateUnique runs the live availability check for the condominium name
// or the admin email while the operator types.
func (h *OnboardingHandler) ValidateUnique(c *gin.Context) {
	var req dto.ValidateUniqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ValidateUnique(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al validar disponibilidad"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Crea el condominio con todo lo capturado en el asistente
// @Tags onboarding
// @Success 201 {object} dto.CreateTenantResponse
// @Failure 409 {object} apierror.ConflictError
// @Router /v1/onboarding/submit [post]
func (h *OnboardingHandler) Submit(c *gin.Context) {
	resp, err := h.svc.Submit(c.Request.Context(), operatorID(c))
	if err != nil {
		var conflicto *service.ErrConflicto
		if errors.As(err, &conflicto) {
			// 409 carries the step to rewind to; the draft stays intact.
			c.JSON(http.StatusConflict, apierror.NewConflict(conflicto.Mensaje, conflicto.Paso))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
