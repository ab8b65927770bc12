package document

import "time"

// Document represents the documentos table. Only metadata lives here;
// the object itself is addressed by StorageKey in external storage.
type Document struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"negocioId"`
	ClienteID  *uint     `gorm:"index" json:"clienteId"`
	Titulo     string    `gorm:"size:200;not null" json:"titulo"`
	Tipo       string    `gorm:"size:40" json:"tipo"`
	StorageKey string    `gorm:"size:120;uniqueIndex;not null" json:"storageKey"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Document) TableName() string {
	return "documentos"
}
