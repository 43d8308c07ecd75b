package handler

import (
	"net/http"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

type CursosHandler struct{ svc service.CursoService }

func NewCursosHandler(svc service.CursoService) *CursosHandler {
	return &CursosHandler{svc: svc}
}

func (h *CursosHandler) Crear(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	var req dto.CrearCursoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCurso(c.Request.Context(), condominioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CursosHandler) Listar(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarCursos(c.Request.Context(), condominioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cursos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CursosHandler) CrearLeccion(c *gin.Context) {
	condominioID, err := claimCondominioID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		return
	}
	cursoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearLeccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearLeccion(c.Request.Context(), condominioID, cursoID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CursosHandler) Inscribir(c *gin.Context) {
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
	cursoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Inscribir(c.Request.Context(), condominioID, cursoID, usuarioID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// CompletarLeccion marks a lesson done and returns the refreshed progress.
// Repeating the call for the same lesson changes nothing.
func (h *CursosHandler) CompletarLeccion(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	cursoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	leccionID, ok := pathUUID(c, "leccionId")
	if !ok {
		return
	}
	resp, err := h.svc.CompletarLeccion(c.Request.Context(), cursoID, leccionID, usuarioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CursosHandler) Progreso(c *gin.Context) {
	usuarioID, err := claimUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	cursoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Progreso(c.Request.Context(), cursoID, usuarioID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
