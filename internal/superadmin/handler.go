package superadmin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/auditlog"
	"github.com/draftbook/clinic-management-backend/internal/reports"
	"github.com/draftbook/clinic-management-backend/internal/subscription"
	"github.com/draftbook/clinic-management-backend/middleware"
	"github.com/draftbook/clinic-management-backend/utils"
)

type Handler struct {
	svc     Service
	pagos   subscription.Service
	reports reports.Service
	audit   auditlog.Service
}

func NewHandler(svc Service, pagos subscription.Service, reports reports.Service, audit auditlog.Service) *Handler {
	return &Handler{svc: svc, pagos: pagos, reports: reports, audit: audit}
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("id inválido")
	}
	return uint(id), nil
}

func (h *Handler) logAction(c *gin.Context, tenantID *uint, action string, details map[string]interface{}) {
	p, _ := middleware.PrincipalFrom(c)
	userID := p.UserID
	h.audit.LogAction(&userID, tenantID, action, c.ClientIP(), auditlog.StatusSuccess, details)
}

// =============================
// Estadísticas / actividad
// =============================

// GET /superadmin/estadisticas
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.reports.PlatformStats()
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GET /superadmin/actividad
func (h *Handler) Activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	items, err := h.reports.RecentActivity(limit)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// =============================
// Negocios
// =============================

// GET /superadmin/negocios
func (h *Handler) ListNegocios(c *gin.Context) {
	pag := utils.ParsePagination(c)

	var activo *bool
	if raw := c.Query("activo"); raw != "" {
		v := raw == "true"
		activo = &v
	}

	negocios, total, err := h.svc.ListNegocios(c.Query("buscar"), activo, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(negocios, total, pag))
}

// POST /superadmin/negocios
func (h *Handler) CreateNegocio(c *gin.Context) {
	var in NegocioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	t, err := h.svc.CreateNegocio(in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "negocio creado", "data": t})
}

// PUT /superadmin/negocios/:id
func (h *Handler) UpdateNegocio(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var in NegocioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	t, err := h.svc.UpdateNegocio(id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "negocio actualizado", "data": t})
}

// DELETE /superadmin/negocios/:id
func (h *Handler) DeleteNegocio(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := h.svc.DeleteNegocio(id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "negocio eliminado"})
}

// PATCH /superadmin/negocios/:id/suspender
func (h *Handler) SuspenderNegocio(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var in struct {
		Suspendido *bool  `json:"suspendido" binding:"required"`
		Motivo     string `json:"motivo"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("suspendido requerido"))
		return
	}

	t, err := h.svc.SetSuspension(id, *in.Suspendido, in.Motivo)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.logAction(c, &t.ID, auditlog.ActionNegocioSuspendido, map[string]interface{}{
		"suspendido": *in.Suspendido,
		"motivo":     in.Motivo,
	})
	c.JSON(http.StatusOK, gin.H{"message": "suspensión actualizada", "data": t})
}

// PATCH /superadmin/negocios/:id/activar
func (h *Handler) ActivarNegocio(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var in struct {
		Activo *bool `json:"activo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("activo requerido"))
		return
	}

	t, err := h.svc.SetActivo(id, *in.Activo)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.logAction(c, &t.ID, auditlog.ActionNegocioActivado, map[string]interface{}{
		"activo": *in.Activo,
	})
	c.JSON(http.StatusOK, gin.H{"message": "estado actualizado", "data": t})
}

// GET /superadmin/negocios/:id/estadisticas
func (h *Handler) NegocioStats(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	stats, err := h.reports.NegocioStats(id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// =============================
// Pagos de plataforma
// =============================

// GET /superadmin/pagos
func (h *Handler) ListPagos(c *gin.Context) {
	pag := utils.ParsePagination(c)

	var tenantID *uint
	if raw := c.Query("negocioId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			tenantID = &v
		}
	}

	pagos, total, err := h.pagos.ListPayments(c.Query("estado"), tenantID, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(pagos, total, pag))
}

// PATCH /superadmin/pagos/:id
func (h *Handler) UpdatePago(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var in subscription.UpdatePaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	p, err := h.pagos.UpdatePayment(id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.logAction(c, &p.TenantID, auditlog.ActionPagoActualizado, map[string]interface{}{
		"pagoId": p.ID,
		"estado": p.Estado,
	})
	c.JSON(http.StatusOK, gin.H{"message": "pago actualizado", "data": p})
}

// POST /superadmin/pagos/manual
func (h *Handler) CreatePagoManual(c *gin.Context) {
	var in subscription.ManualPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	p, err := h.pagos.CreateManualPayment(in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.logAction(c, &p.TenantID, auditlog.ActionPagoManual, map[string]interface{}{
		"pagoId":     p.ID,
		"monto":      p.Monto,
		"referencia": p.Referencia,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "pago manual registrado", "data": p})
}

// POST /superadmin/revisar-pagos
func (h *Handler) RevisarPagos(c *gin.Context) {
	result, err := h.pagos.RunRevision()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	h.logAction(c, nil, auditlog.ActionRevisionPagos, map[string]interface{}{
		"pagosVencidos":       result.PagosVencidos,
		"negociosSuspendidos": result.NegociosSuspendidos,
	})
	c.JSON(http.StatusOK, gin.H{
		"message":   "revisión de pagos ejecutada",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"resumen":   result,
	})
}

// =============================
// Usuarios
// =============================

// GET /superadmin/usuarios
func (h *Handler) ListUsuarios(c *gin.Context) {
	pag := utils.ParsePagination(c)

	var tenantID *uint
	if raw := c.Query("negocioId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			tenantID = &v
		}
	}

	usuarios, total, err := h.svc.ListUsuarios(c.Query("rol"), tenantID, pag.Limit, pag.Offset())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Envelope(usuarios, total, pag))
}

// POST /superadmin/usuarios
func (h *Handler) CreateUsuario(c *gin.Context) {
	var in UsuarioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	u, err := h.svc.CreateUsuario(in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "usuario creado", "data": u})
}

// PUT /superadmin/usuarios/:id
func (h *Handler) UpdateUsuario(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var in UsuarioUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	u, err := h.svc.UpdateUsuario(id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "usuario actualizado", "data": u})
}

// DELETE /superadmin/usuarios/:id
func (h *Handler) DeleteUsuario(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := h.svc.DeleteUsuario(id); err != nil {
		apperr.Respond(c, err)
		return
	}

	h.logAction(c, nil, auditlog.ActionUsuarioEliminado, map[string]interface{}{"usuarioId": id})
	c.JSON(http.StatusOK, gin.H{"message": "usuario eliminado"})
}
