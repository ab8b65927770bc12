package document

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(d *Document) error
	FindByID(tenantID, id uint) (*Document, error)
	Delete(tenantID, id uint) error
	List(tenantID uint, clienteID *uint, limit, offset int) ([]Document, int64, error)
	ListByCliente(tenantID, clienteID uint) ([]Document, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(d *Document) error {
	return r.db.Create(d).Error
}

func (r *repository) FindByID(tenantID, id uint) (*Document, error) {
	var d Document
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&d).Error
	return &d, err
}

func (r *repository) Delete(tenantID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(tenantID uint, clienteID *uint, limit, offset int) ([]Document, int64, error) {
	q := r.db.Model(&Document{}).Where("tenant_id = ?", tenantID)
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []Document
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&docs).Error
	return docs, total, err
}

func (r *repository) ListByCliente(tenantID, clienteID uint) ([]Document, error) {
	var docs []Document
	err := r.db.
		Where("tenant_id = ? AND cliente_id = ?", tenantID, clienteID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}
