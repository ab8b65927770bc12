package auth

import (
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/internal/subscription"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (*User, error)
	Update(user *User) error
	UpdateFields(userID uint, fields map[string]interface{}) error
	Delete(userID uint) error
	List(rol string, tenantID *uint, limit, offset int) ([]User, int64, error)

	// Registration writes the negocio, its admin and the first
	// subscription period in one transaction.
	CreateTenantWithAdmin(t *tenant.Tenant, admin *User, firstPayment *subscription.Payment) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (*User, error) {
	var u User
	err := r.db.First(&u, userID).Error
	return &u, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) UpdateFields(userID uint, fields map[string]interface{}) error {
	res := r.db.Model(&User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(userID uint) error {
	res := r.db.Delete(&User{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(rol string, tenantID *uint, limit, offset int) ([]User, int64, error) {
	q := r.db.Model(&User{})
	if rol != "" {
		q = q.Where("rol = ?", rol)
	}
	if tenantID != nil {
		q = q.Where("tenant_id = ?", *tenantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *repository) CreateTenantWithAdmin(t *tenant.Tenant, admin *User, firstPayment *subscription.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		admin.TenantID = &t.ID
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		firstPayment.TenantID = t.ID
		return tx.Create(firstPayment).Error
	})
}
