package subscription

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(p *Payment) error
	FindByID(id uint) (*Payment, error)
	Update(p *Payment) error
	List(estado string, tenantID *uint, limit, offset int) ([]Payment, int64, error)
	CountByEstado() (map[string]int64, error)

	// Revision sweep steps, both set-based and idempotent.
	ExpireOverduePendientes(now time.Time) (int64, error)
	SuspendDelinquents(cutoff, now time.Time) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(p *Payment) error {
	return r.db.Create(p).Error
}

func (r *repository) FindByID(id uint) (*Payment, error) {
	var p Payment
	err := r.db.First(&p, id).Error
	return &p, err
}

func (r *repository) Update(p *Payment) error {
	return r.db.Save(p).Error
}

func (r *repository) List(estado string, tenantID *uint, limit, offset int) ([]Payment, int64, error) {
	q := r.db.Model(&Payment{})
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if tenantID != nil {
		q = q.Where("tenant_id = ?", *tenantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []Payment
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *repository) CountByEstado() (map[string]int64, error) {
	type row struct {
		Estado string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&Payment{}).
		Select("estado, COUNT(*) as total").
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		EstadoPendiente: 0,
		EstadoPagado:    0,
		EstadoRechazado: 0,
		EstadoVencido:   0,
	}
	for _, r := range rows {
		counts[r.Estado] = r.Total
	}
	return counts, nil
}

// ExpireOverduePendientes marks every PENDIENTE payment whose covered
// period already ended as VENCIDO.
func (r *repository) ExpireOverduePendientes(now time.Time) (int64, error) {
	res := r.db.Model(&Payment{}).
		Where("estado = ? AND fecha_fin < ?", EstadoPendiente, now).
		Update("estado", EstadoVencido)
	return res.RowsAffected, res.Error
}

// SuspendDelinquents suspends negocios whose newest VENCIDO payment
// ended before the grace cutoff and that hold no PAGADO payment still
// covering the current date. Already-suspended negocios are untouched,
// so re-running the sweep is a no-op.
func (r *repository) SuspendDelinquents(cutoff, now time.Time) (int64, error) {
	res := r.db.Exec(`
		UPDATE negocios SET
			suspendido = true,
			motivo_suspension = 'Suspensión automática por falta de pago',
			updated_at = NOW()
		WHERE suspendido = false
		  AND id IN (
			SELECT tenant_id FROM pagos_sistema
			WHERE estado = ?
			GROUP BY tenant_id
			HAVING MAX(fecha_fin) < ?
		  )
		  AND id NOT IN (
			SELECT tenant_id FROM pagos_sistema
			WHERE estado = ? AND fecha_fin >= ?
		  )
	`, EstadoVencido, cutoff, EstadoPagado, now)
	return res.RowsAffected, res.Error
}
