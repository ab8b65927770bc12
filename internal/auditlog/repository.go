package auditlog

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(l *AuditLog) error
	List(action string, tenantID *uint, limit, offset int) ([]AuditLog, int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(l *AuditLog) error {
	return r.db.Create(l).Error
}

func (r *repository) List(action string, tenantID *uint, limit, offset int) ([]AuditLog, int64, error) {
	q := r.db.Model(&AuditLog{})
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if tenantID != nil {
		q = q.Where("tenant_id = ?", *tenantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []AuditLog
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}
