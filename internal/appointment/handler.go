package appointment

import (
	"net/http"
	"strconv"
	"time"

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

// POST /admin/citas
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

	a, err := h.svc.Create(tenantID, p.UserID, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "cita creada", "data": a})
}

// GET /admin/citas/:id
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

	a, err := h.svc.Get(tenantID, id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": a})
}

// GET /admin/citas
func (h *Handler) List(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	pag := utils.ParsePagination(c)

	filter := ListFilter{Estado: c.Query("estado")}
	if raw := c.Query("clienteId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			filter.ClienteID = &v
		}
	}
	if raw := c.Query("desde"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.Desde = &t
		}
	}
	if raw := c.Query("hasta"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.Hasta = &t
		}
	}

	citas, total, err := h.svc.List(tenantID, filter, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(citas, total, pag))
}

// PUT /admin/citas/:id
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

	a, err := h.svc.Update(tenantID, id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cita actualizada", "data": a})
}

// DELETE /admin/citas/:id
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
	c.JSON(http.StatusOK, gin.H{"message": "cita eliminada"})
}
