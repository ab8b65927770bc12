package client

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(c *Client) error
	FindByID(tenantID, id uint) (*Client, error)
	Update(c *Client) error
	Delete(tenantID, id uint) error
	List(tenantID uint, limit, offset int) ([]Client, int64, error)
	Search(tenantID uint, query string, limit int) ([]Client, error)
	ExistsInTenant(tenantID, id uint) (bool, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(c *Client) error {
	return r.db.Create(c).Error
}

// Every lookup intersects tenant_id; a cross-tenant id behaves exactly
// like a missing one.
func (r *repository) FindByID(tenantID, id uint) (*Client, error) {
	var c Client
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&c).Error
	return &c, err
}

func (r *repository) Update(c *Client) error {
	res := r.db.Model(&Client{}).
		Where("tenant_id = ? AND id = ?", c.TenantID, c.ID).
		Updates(map[string]interface{}{
			"nombre":           c.Nombre,
			"apellido":         c.Apellido,
			"email":            c.Email,
			"telefono":         c.Telefono,
			"fecha_nacimiento": c.FechaNacimiento,
			"genero":           c.Genero,
			"direccion":        c.Direccion,
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
	res := r.db.Where("tenant_id = ?", tenantID).Delete(&Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) List(tenantID uint, limit, offset int) ([]Client, int64, error) {
	q := r.db.Model(&Client{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []Client
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&clients).Error
	return clients, total, err
}

func (r *repository) Search(tenantID uint, query string, limit int) ([]Client, error) {
	like := "%" + query + "%"
	var clients []Client
	err := r.db.
		Where("tenant_id = ? AND (nombre ILIKE ? OR apellido ILIKE ? OR email ILIKE ? OR telefono ILIKE ?)",
			tenantID, like, like, like, like).
		Order("nombre ASC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}

func (r *repository) ExistsInTenant(tenantID, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&Client{}).Where("tenant_id = ? AND id = ?", tenantID, id).Count(&count).Error
	return count > 0, err
}
