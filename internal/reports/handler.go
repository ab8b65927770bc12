package reports

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
	"github.com/draftbook/clinic-management-backend/middleware"
)

type Handler struct {
	svc     Service
	tenants tenant.Repository
}

func NewHandler(s Service, tenants tenant.Repository) *Handler {
	return &Handler{svc: s, tenants: tenants}
}

// GET /admin/estadisticas
func (h *Handler) AdminStats(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)

	stats, err := h.svc.AdminStats(p.EffectiveTenantID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GET /negocio/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	d, err := h.svc.Dashboard(tenantID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

// GET /negocio/reporte-mensual?anio=&mes=&formato=
func (h *Handler) MonthlyReport(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	tenantID, err := p.RequireTenant()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	anio, _ := strconv.Atoi(c.Query("anio"))
	mes, _ := strconv.Atoi(c.Query("mes"))

	report, err := h.svc.MonthlyReport(tenantID, anio, mes)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if c.Query("formato") == "xlsx" {
		negocioNombre := "Negocio"
		if t, err := h.tenants.FindByID(tenantID); err == nil {
			negocioNombre = t.Nombre
		}

		data, filename, err := ExportMonthlyExcel(negocioNombre, report)
		if err != nil {
			apperr.Respond(c, apperr.Internal(err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
