package prescription

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(p *Prescription) error
	FindByID(tenantID, id uint) (*Prescription, error)
	Update(p *Prescription) error
	Delete(tenantID, id uint) error
	List(tenantID uint, clienteID *uint, limit, offset int) ([]Prescription, int64, error)
	ListByCliente(tenantID, clienteID uint) ([]Prescription, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(p *Prescription) error {
	return r.db.Create(p).Error
}

func (r *repository) FindByID(tenantID, id uint) (*Prescription, error) {
	var p Prescription
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&p).Error
	return &p, err
}

func (r *repository) Update(p *Prescription) error {
	res := r.db.Model(&Prescription{}).
		Where("tenant_id = ? AND id = ?", p.TenantID, p.ID).
		Update("contenido", p.Contenido)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(tenantID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Prescription{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(tenantID uint, clienteID *uint, limit, offset int) ([]Prescription, int64, error) {
	q := r.db.Model(&Prescription{}).Where("tenant_id = ?", tenantID)
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recetas []Prescription
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&recetas).Error
	return recetas, total, err
}

func (r *repository) ListByCliente(tenantID, clienteID uint) ([]Prescription, error) {
	var recetas []Prescription
	err := r.db.
		Where("tenant_id = ? AND cliente_id = ?", tenantID, clienteID).
		Order("created_at DESC").
		Find(&recetas).Error
	return recetas, err
}
