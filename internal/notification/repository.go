package notification

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(n *Notification) error
	List(tenantID uint, soloNoLeidas bool, limit, offset int) ([]Notification, int64, error)
	MarkRead(tenantID, id uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(n *Notification) error {
	return r.db.Create(n).Error
}

func (r *repository) List(tenantID uint, soloNoLeidas bool, limit, offset int) ([]Notification, int64, error) {
	q := r.db.Model(&Notification{}).Where("tenant_id = ?", tenantID)
	if soloNoLeidas {
		q = q.Where("leida = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []Notification
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, total, err
}

func (r *repository) MarkRead(tenantID, id uint) error {
	res := r.db.Model(&Notification{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("leida", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
