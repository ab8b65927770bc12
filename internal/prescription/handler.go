package prescription

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
	"github.com/draftbook/clinic-management-backend/middleware"
	"github.com/draftbook/clinic-management-backend/utils"
)

type Handler struct {
	svc     Service
	tenants tenant.Repository
}

func NewHandler(s Service, tenants tenant.Repository) *Handler {
	return &Handler{svc: s, tenants: tenants}
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("id inválido")
	}
	return uint(id), nil
}

// POST /admin/recetas
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

	receta, err := h.svc.Create(tenantID, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "receta creada", "data": receta})
}

// GET /admin/recetas/:id
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

	receta, err := h.svc.Get(tenantID, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": receta})
}

// GET /admin/recetas
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

	recetas, total, err := h.svc.List(tenantID, clienteID, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(recetas, total, pag))
}

// PUT /admin/recetas/:id
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

	var in struct {
		Contenido string `json:"contenido" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("contenido requerido"))
		return
	}

	receta, err := h.svc.Update(tenantID, id, in.Contenido)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "receta actualizada", "data": receta})
}

// DELETE /admin/recetas/:id
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
	c.JSON(http.StatusOK, gin.H{"message": "receta eliminada"})
}

// GET /admin/recetas/:id/pdf
func (h *Handler) DownloadPDF(c *gin.Context) {
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

	negocioNombre := "Clínica"
	if t, err := h.tenants.FindByID(tenantID); err == nil {
		negocioNombre = t.Nombre
	}

	pdf, err := h.svc.RenderPDF(tenantID, id, negocioNombre)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"receta_%d.pdf\"", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
