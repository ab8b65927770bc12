package prescription

import "time"

// Prescription represents the recetas table.
type Prescription struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"negocioId"`
	ClienteID uint      `gorm:"not null;index" json:"clienteId"`
	CitaID    *uint     `gorm:"index" json:"citaId"`
	Contenido string    `gorm:"type:text;not null" json:"contenido"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Prescription) TableName() string {
	return "recetas"
}
