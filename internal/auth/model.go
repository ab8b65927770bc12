package auth

import "time"

// User represents the usuarios table. TenantID is nil only for
// platform superadmins.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Nombre       string    `gorm:"size:100;not null" json:"nombre"`
	Apellido     string    `gorm:"size:100" json:"apellido"`
	Rol          string    `gorm:"size:20;not null;index" json:"rol"`
	TenantID     *uint     `gorm:"index" json:"negocioId"`
	Activo       bool      `gorm:"default:true" json:"activo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "usuarios"
}
