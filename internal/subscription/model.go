package subscription

import "time"

// Estados of a platform subscription payment.
const (
	EstadoPendiente = "PENDIENTE"
	EstadoPagado    = "PAGADO"
	EstadoRechazado = "RECHAZADO"
	EstadoVencido   = "VENCIDO"
)

// GraceDays is how long after the last covered period expires a
// negocio keeps working before the revision job suspends it.
const GraceDays = 7

// Payment represents the pagos_sistema table: one row per billing
// period of a negocio's platform subscription.
type Payment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID    uint      `gorm:"not null;index" json:"negocioId"`
	Monto       float64   `gorm:"not null" json:"monto"`
	Moneda      string    `gorm:"size:3;default:'MXN'" json:"moneda"`
	FechaInicio time.Time `gorm:"not null" json:"fechaInicio"`
	FechaFin    time.Time `gorm:"not null;index" json:"fechaFin"`
	Estado      string    `gorm:"size:20;not null;default:'PENDIENTE';index" json:"estado"`
	Metodo      string    `gorm:"size:40" json:"metodo"`
	Referencia  string    `gorm:"size:80" json:"referencia"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Payment) TableName() string {
	return "pagos_sistema"
}

// ValidTransition reports whether a manual state change is allowed.
// PENDIENTE resolves to PAGADO or RECHAZADO; anything may be marked
// VENCIDO; terminal states never change otherwise.
func ValidTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch to {
	case EstadoPagado, EstadoRechazado:
		return from == EstadoPendiente
	case EstadoVencido:
		return from != EstadoVencido
	default:
		return false
	}
}
