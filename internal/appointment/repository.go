package appointment

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(a *Appointment) error
	FindByID(tenantID, id uint) (*Appointment, error)
	Update(a *Appointment) error
	Delete(tenantID, id uint) error
	List(tenantID uint, filter ListFilter, limit, offset int) ([]Appointment, int64, error)
	ListByCliente(tenantID, clienteID uint) ([]Appointment, error)
	ExistsInTenant(tenantID, id uint) (bool, error)
}

// ListFilter narrows the citas listing.
type ListFilter struct {
	Estado    string
	ClienteID *uint
	Desde     *time.Time
	Hasta     *time.Time
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(a *Appointment) error {
	return r.db.Create(a).Error
}

func (r *repository) FindByID(tenantID, id uint) (*Appointment, error) {
	var a Appointment
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&a).Error
	return &a, err
}

func (r *repository) Update(a *Appointment) error {
	res := r.db.Model(&Appointment{}).
		Where("tenant_id = ? AND id = ?", a.TenantID, a.ID).
		Updates(map[string]interface{}{
			"fecha":    a.Fecha,
			"hora":     a.Hora,
			"duracion": a.Duracion,
			"motivo":   a.Motivo,
			"estado":   a.Estado,
			"notas":    a.Notas,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(tenantID, id uint) error {
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(tenantID uint, filter ListFilter, limit, offset int) ([]Appointment, int64, error) {
	q := r.db.Model(&Appointment{}).Where("tenant_id = ?", tenantID)
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != nil {
		q = q.Where("cliente_id = ?", *filter.ClienteID)
	}
	if filter.Desde != nil {
		q = q.Where("fecha >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha <= ?", *filter.Hasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var citas []Appointment
	err := q.Order("fecha ASC, hora ASC").Limit(limit).Offset(offset).Find(&citas).Error
	return citas, total, err
}

func (r *repository) ListByCliente(tenantID, clienteID uint) ([]Appointment, error) {
	var citas []Appointment
	err := r.db.
		Where("tenant_id = ? AND cliente_id = ?", tenantID, clienteID).
		Order("fecha DESC").
		Find(&citas).Error
	return citas, err
}

func (r *repository) ExistsInTenant(tenantID, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&Appointment{}).Where("tenant_id = ? AND id = ?", tenantID, id).Count(&count).Error
	return count > 0, err
}
