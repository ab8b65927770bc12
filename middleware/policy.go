package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

// Role names as stored in usuarios.rol
const (
	RolSuperadmin = "SUPERADMIN"
	RolAdmin      = "ADMIN"
	RolCliente    = "CLIENT"
)

// Operation identifies a protected API operation. Authorization is a
// single table lookup; no handler carries its own role list.
type Operation string

const (
	OpClientesRead    Operation = "clientes:read"
	OpClientesWrite   Operation = "clientes:write"
	OpCitasRead       Operation = "citas:read"
	OpCitasWrite      Operation = "citas:write"
	OpRecetasRead     Operation = "recetas:read"
	OpRecetasWrite    Operation = "recetas:write"
	OpDocumentosRead  Operation = "documentos:read"
	OpDocumentosWrite Operation = "documentos:write"
	OpPagosCliente    Operation = "pagos_cliente:manage"
	OpNotificaciones  Operation = "notificaciones:manage"
	OpEstadisticas    Operation = "estadisticas:read"
	OpNegocioPerfil   Operation = "negocio:perfil"
	OpNegocioReportes Operation = "negocio:reportes"
	OpPlataforma      Operation = "plataforma:manage"
)

var policy = map[Operation][]string{
	OpClientesRead:    {RolAdmin, RolSuperadmin},
	OpClientesWrite:   {RolAdmin, RolSuperadmin},
	OpCitasRead:       {RolAdmin, RolSuperadmin, RolCliente},
	OpCitasWrite:      {RolAdmin, RolSuperadmin},
	OpRecetasRead:     {RolAdmin, RolSuperadmin},
	OpRecetasWrite:    {RolAdmin, RolSuperadmin},
	OpDocumentosRead:  {RolAdmin, RolSuperadmin},
	OpDocumentosWrite: {RolAdmin, RolSuperadmin},
	OpPagosCliente:    {RolAdmin, RolSuperadmin},
	OpNotificaciones:  {RolAdmin, RolSuperadmin},
	OpEstadisticas:    {RolAdmin, RolSuperadmin},
	OpNegocioPerfil:   {RolAdmin, RolSuperadmin},
	OpNegocioReportes: {RolAdmin, RolSuperadmin},
	OpPlataforma:      {RolSuperadmin},
}

// Allowed reports whether the role may perform the operation.
func Allowed(op Operation, rol string) bool {
	for _, allowed := range policy[op] {
		if rol == allowed {
			return true
		}
	}
	return false
}

// Require aborts with 403 unless the authenticated principal's role is
// allowed for the operation.
func Require(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			apperr.Respond(c, apperr.Unauthenticated("no autenticado"))
			return
		}
		if !Allowed(op, p.Rol) {
			apperr.Respond(c, apperr.Forbidden("no tienes permisos para esta operación"))
			return
		}
		c.Next()
	}
}
