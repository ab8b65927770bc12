package client

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

// POST /admin/clientes
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

	cl, err := h.svc.Create(tenantID, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "cliente creado", "data": cl})
}

// GET /admin/clientes
func (h *Handler) List(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	pag := utils.ParsePagination(c)
	clients, total, err := h.svc.List(tenantID, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(clients, total, pag))
}

// GET /admin/clientes/buscar?q=
func (h *Handler) Search(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	clients, err := h.svc.Search(tenantID, c.Query("q"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": clients})
}

// GET /admin/clientes/:id
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

	cl, err := h.svc.Get(tenantID, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cl})
}

// GET /admin/clientes/:id/expediente
func (h *Handler) GetExpediente(c *gin.Context) {
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

	exp, err := h.svc.GetExpediente(tenantID, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": exp})
}

// PUT /admin/clientes/:id
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

	cl, err := h.svc.Update(tenantID, id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cliente actualizado", "data": cl})
}

// DELETE /admin/clientes/:id
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
	c.JSON(http.StatusOK, gin.H{"message": "cliente eliminado"})
}
