package tenant

import "time"

// Tenant represents the negocios table. Activo and Suspendido are
// independent axes: activo is the administrative on/off switch,
// suspendido is set by the payment revision job (or a superadmin) and
// is only ever cleared manually.
type Tenant struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug             string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Nombre           string    `gorm:"size:150;not null" json:"nombre"`
	Email            string    `gorm:"size:150" json:"email"`
	Telefono         string    `gorm:"size:30" json:"telefono"`
	Direccion        string    `gorm:"size:255" json:"direccion"`
	Activo           bool      `gorm:"default:true" json:"activo"`
	Suspendido       bool      `gorm:"default:false;index" json:"suspendido"`
	MotivoSuspension string    `gorm:"size:255" json:"motivoSuspension"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (Tenant) TableName() string {
	return "negocios"
}

// Disponible reports whether the negocio can be operated on.
func (t *Tenant) Disponible() bool {
	return t.Activo && !t.Suspendido
}
