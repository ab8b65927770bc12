package tenant

import (
	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

type Service interface {
	GetProfile(tenantID uint) (*Tenant, error)
	UpdateProfile(tenantID uint, in UpdateProfileInput) (*Tenant, error)
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

type UpdateProfileInput struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

func (s *service) GetProfile(tenantID uint) (*Tenant, error) {
	t, err := s.repo.FindByID(tenantID)
	if err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return t, nil
}

// UpdateProfile lets the admin edit contact data. Slug, activo and
// suspendido are not editable from here.
func (s *service) UpdateProfile(tenantID uint, in UpdateProfileInput) (*Tenant, error) {
	t, err := s.repo.FindByID(tenantID)
	if err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}

	if in.Nombre != "" {
		t.Nombre = in.Nombre
	}
	if in.Email != "" {
		t.Email = in.Email
	}
	if in.Telefono != "" {
		t.Telefono = in.Telefono
	}
	if in.Direccion != "" {
		t.Direccion = in.Direccion
	}

	if err := s.repo.Update(t); err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return t, nil
}
