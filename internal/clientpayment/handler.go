package clientpayment

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

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("id inválido")
	}
	return uint(id), nil
}

// POST /admin/pagos-cliente
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

	pago, err := h.svc.Create(tenantID, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "pago registrado", "data": pago})
}

// GET /admin/pagos-cliente/:id
func (h *Handler) Get(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	pago, err := h.svc.Get(tenantID, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pago})
}

// GET /admin/pagos-cliente
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

	pagos, total, err := h.svc.List(tenantID, c.Query("estado"), clienteID, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(pagos, total, pag))
}

// PUT /admin/pagos-cliente/:id
func (h *Handler) Update(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	pago, err := h.svc.Update(tenantID, id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pago actualizado", "data": pago})
}

// DELETE /admin/pagos-cliente/:id
func (h *Handler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := h.svc.Delete(tenantID, id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pago eliminado"})
}
