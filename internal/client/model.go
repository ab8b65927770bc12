package client

import "time"

// Client represents the clientes table (patients of a negocio).
type Client struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID        uint       `gorm:"not null;index" json:"negocioId"`
	Nombre          string     `gorm:"size:100;not null" json:"nombre"`
	Apellido        string     `gorm:"size:100" json:"apellido"`
	Email           string     `gorm:"size:150" json:"email"`
	Telefono        string     `gorm:"size:30" json:"telefono"`
	FechaNacimiento *time.Time `json:"fechaNacimiento"`
	Genero          string     `gorm:"size:20" json:"genero"`
	Direccion       string     `gorm:"size:255" json:"direccion"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Client) TableName() string {
	return "clientes"
}
