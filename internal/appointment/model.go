package appointment

import "time"

// Estados of an appointment.
const (
	EstadoPendiente  = "PENDIENTE"
	EstadoConfirmada = "CONFIRMADA"
	EstadoRechazada  = "RECHAZADA"
	EstadoCompletada = "COMPLETADA"
	EstadoCancelada  = "CANCELADA"
)

// Appointment represents the citas table.
type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"negocioId"`
	ClienteID uint      `gorm:"not null;index" json:"clienteId"`
	UsuarioID uint      `gorm:"not null" json:"usuarioId"`
	Fecha     time.Time `gorm:"not null;index" json:"fecha"`
	Hora      string    `gorm:"size:5;not null" json:"hora"`
	Duracion  int       `gorm:"default:60" json:"duracion"`
	Motivo    string    `gorm:"size:255" json:"motivo"`
	Estado    string    `gorm:"size:20;not null;default:'PENDIENTE';index" json:"estado"`
	Notas     string    `gorm:"type:text" json:"notas"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "citas"
}

func ValidEstado(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoConfirmada, EstadoRechazada, EstadoCompletada, EstadoCancelada:
		return true
	}
	return false
}
