package notification

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

// GET /admin/notificaciones
func (h *Handler) List(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	pag := utils.ParsePagination(c)
	soloNoLeidas := c.Query("noLeidas") == "true"

	notifications, total, err := h.svc.List(tenantID, soloNoLeidas, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(notifications, total, pag))
}

// PATCH /admin/notificaciones/:id/leida
func (h *Handler) MarkRead(c *gin.Context) {
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

	if err := h.svc.MarkRead(tenantID, uint(id)); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notificación marcada como leída"})
}
