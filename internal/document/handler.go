package document

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/middleware"
	"github.com/draftbook/clinic-management-backend/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

// GET /admin/documentos
func (h *Handler) List(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	pag := utils.ParsePagination(c)
	var clienteID *uint
	if raw := c.Query("clienteId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			clienteID = &v
		}
	}

	docs, total, err := h.svc.List(tenantID, clienteID, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(docs, total, pag))
}

// POST /admin/documentos
func (h *Handler) Create(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	d, err := h.svc.Create(tenantID, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "documento registrado", "data": d})
}

// DELETE /admin/documentos/:id
func (h *Handler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperr.Respond(c, apperr.Validation("id inválido"))
		return
	}

	if err := h.svc.Delete(tenantID, uint(id)); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "documento eliminado"})
}
