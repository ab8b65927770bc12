package clientpayment

import "time"

// Estados of a client payment.
const (
	EstadoPendiente = "PENDIENTE"
	EstadoPagado    = "PAGADO"
	EstadoRechazado = "RECHAZADO"
)

// Payment represents the pagos_cliente table: what a patient owes or
// paid to the negocio. Independent of the platform's pagos_sistema.
type Payment struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID   uint       `gorm:"not null;index" json:"negocioId"`
	ClienteID  uint       `gorm:"not null;index" json:"clienteId"`
	CitaID     *uint      `gorm:"index" json:"citaId"`
	Monto      float64    `gorm:"not null" json:"monto"`
	Moneda     string     `gorm:"size:3;default:'MXN'" json:"moneda"`
	Concepto   string     `gorm:"size:255" json:"concepto"`
	Metodo     string     `gorm:"size:40" json:"metodo"`
	Estado     string     `gorm:"size:20;not null;default:'PENDIENTE';index" json:"estado"`
	Referencia string     `gorm:"size:80" json:"referencia"`
	FechaPago  *time.Time `json:"fechaPago"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (Payment) TableName() string {
	return "pagos_cliente"
}

func ValidEstado(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoPagado, EstadoRechazado:
		return true
	}
	return false
}
