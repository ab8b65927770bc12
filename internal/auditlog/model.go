package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Audited actions
const (
	ActionNegocioSuspendido = "NEGOCIO_SUSPENDIDO"
	ActionNegocioActivado   = "NEGOCIO_ACTIVADO"
	ActionPagoManual        = "PAGO_MANUAL"
	ActionPagoActualizado   = "PAGO_ACTUALIZADO"
	ActionRevisionPagos     = "REVISION_PAGOS"
	ActionUsuarioEliminado  = "USUARIO_ELIMINADO"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"userId"`
	TenantID  *uint          `gorm:"index" json:"negocioId"`
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `json:"details"`
	IPAddress string         `gorm:"size:45" json:"ipAddress"`
	Status    string         `gorm:"size:20;not null;index" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
