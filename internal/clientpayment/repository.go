package clientpayment

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(p *Payment) error
	FindByID(tenantID, id uint) (*Payment, error)
	Update(p *Payment) error
	Delete(tenantID, id uint) error
	List(tenantID uint, estado string, clienteID *uint, limit, offset int) ([]Payment, int64, error)
	ListByCliente(tenantID, clienteID uint) ([]Payment, error)
	SumPagadosBetween(tenantID uint, desde, hasta time.Time) (float64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(p *Payment) error {
	return r.db.Create(p).Error
}

func (r *repository) FindByID(tenantID, id uint) (*Payment, error) {
	var p Payment
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&p).Error
	return &p, err
}

func (r *repository) Update(p *Payment) error {
	res := r.db.Model(&Payment{}).
		Where("tenant_id = ? AND id = ?", p.TenantID, p.ID).
		Updates(map[string]interface{}{
			"monto":      p.Monto,
			"concepto":   p.Concepto,
			"metodo":     p.Metodo,
			"estado":     p.Estado,
			"referencia": p.Referencia,
			"fecha_pago": p.FechaPago,
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
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(tenantID uint, estado string, clienteID *uint, limit, offset int) ([]Payment, int64, error) {
	q := r.db.Model(&Payment{}).Where("tenant_id = ?", tenantID)
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pagos []Payment
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&pagos).Error
	return pagos, total, err
}

func (r *repository) ListByCliente(tenantID, clienteID uint) ([]Payment, error) {
	var pagos []Payment
	err := r.db.
		Where("tenant_id = ? AND cliente_id = ?", tenantID, clienteID).
		Order("created_at DESC").
		Find(&pagos).Error
	return pagos, err
}

func (r *repository) SumPagadosBetween(tenantID uint, desde, hasta time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&Payment{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("tenant_id = ? AND estado = ? AND fecha_pago BETWEEN ? AND ?",
			tenantID, EstadoPagado, desde, hasta).
		Scan(&total).Error
	return total, err
}
