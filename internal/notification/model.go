package notification

import "time"

// Notification types
const (
	TipoCitaReagendada = "CITA_REAGENDADA"
	TipoCitaCancelada  = "CITA_CANCELADA"
	TipoRecordatorio   = "RECORDATORIO"
)

// Notification represents the notificaciones table: in-app messages
// for a negocio's clients.
type Notification struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID     uint      `gorm:"not null;index" json:"negocioId"`
	ClienteID    uint      `gorm:"not null;index" json:"clienteId"`
	Tipo         string    `gorm:"size:40;not null" json:"tipo"`
	Destinatario string    `gorm:"size:150" json:"destinatario"`
	Asunto       string    `gorm:"size:200" json:"asunto"`
	Contenido    string    `gorm:"type:text" json:"contenido"`
	Leida        bool      `gorm:"default:false;index" json:"leida"`
	Enviado      bool      `gorm:"default:false" json:"enviado"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Notification) TableName() string {
	return "notificaciones"
}
