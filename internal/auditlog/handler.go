package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

// GET /superadmin/auditlogs
func (h *Handler) List(c *gin.Context) {
	pag := utils.ParsePagination(c)

	var tenantID *uint
	if raw := c.Query("negocioId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperr.Respond(c, apperr.Validation("negocioId inválido"))
			return
		}
		v := uint(id)
		tenantID = &v
	}

	logs, total, err := h.svc.List(c.Query("action"), tenantID, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(logs, total, pag))
}
