package tenant

import (
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	Create(t *Tenant) error
	FindByID(id uint) (*Tenant, error)
	FindBySlug(slug string) (*Tenant, error)
	Update(t *Tenant) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	List(search string, activo *bool, limit, offset int) ([]Tenant, int64, error)
	SlugExists(slug string) (bool, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(t *Tenant) error {
	return r.db.Create(t).Error
}

func (r *repository) FindByID(id uint) (*Tenant, error) {
	var t Tenant
	err := r.db.First(&t, id).Error
	return &t, err
}

func (r *repository) FindBySlug(slug string) (*Tenant, error) {
	var t Tenant
	err := r.db.Where("slug = ?", slug).First(&t).Error
	return &t, err
}

func (r *repository) Update(t *Tenant) error {
	return r.db.Save(t).Error
}

func (r *repository) UpdateFields(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&Tenant{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(id uint) error {
	res := r.db.Delete(&Tenant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns negocios with optional name/email search and activo filter.
func (r *repository) List(search string, activo *bool, limit, offset int) ([]Tenant, int64, error) {
	q := r.db.Model(&Tenant{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("nombre ILIKE ? OR email ILIKE ? OR slug ILIKE ?", like, like, like)
	}
	if activo != nil {
		q = q.Where("activo = ?", *activo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tenants []Tenant
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tenants).Error
	return tenants, total, err
}

func (r *repository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&Tenant{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// UniqueSlug derives a slug from the business name and disambiguates
// collisions with a numeric suffix (clinica-sur, clinica-sur-1, ...).
func UniqueSlug(repo Repository, nombre string) (string, error) {
	base := Slugify(nombre)
	if base == "" {
		base = "negocio"
	}

	slug := base
	for i := 1; ; i++ {
		exists, err := repo.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
