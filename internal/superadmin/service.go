package superadmin

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/auth"
	"github.com/draftbook/clinic-management-backend/internal/subscription"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
)

type Service interface {
	ListNegocios(search string, activo *bool, limit, offset int) ([]tenant.Tenant, int64, error)
	CreateNegocio(in NegocioInput) (*tenant.Tenant, error)
	UpdateNegocio(id uint, in NegocioInput) (*tenant.Tenant, error)
	DeleteNegocio(id uint) error
	SetSuspension(id uint, suspendido bool, motivo string) (*tenant.Tenant, error)
	SetActivo(id uint, activo bool) (*tenant.Tenant, error)

	ListUsuarios(rol string, tenantID *uint, limit, offset int) ([]auth.User, int64, error)
	CreateUsuario(in UsuarioInput) (*auth.User, error)
	UpdateUsuario(id uint, in UsuarioUpdateInput) (*auth.User, error)
	DeleteUsuario(id uint) error
}

type service struct {
	tenants tenant.Repository
	users   auth.Repository
	pagos   subscription.Repository
}

func NewService(tenants tenant.Repository, users auth.Repository, pagos subscription.Repository) Service {
	return &service{tenants: tenants, users: users, pagos: pagos}
}

// =============================
// Negocios
// =============================

type NegocioInput struct {
	Nombre    string `json:"nombre" binding:"required"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

func (s *service) ListNegocios(search string, activo *bool, limit, offset int) ([]tenant.Tenant, int64, error) {
	return s.tenants.List(search, activo, limit, offset)
}

func (s *service) CreateNegocio(in NegocioInput) (*tenant.Tenant, error) {
	slug, err := tenant.UniqueSlug(s.tenants, in.Nombre)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	t := &tenant.Tenant{
		Slug:      slug,
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Activo:    true,
	}
	if err := s.tenants.Create(t); err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return t, nil
}

func (s *service) UpdateNegocio(id uint, in NegocioInput) (*tenant.Tenant, error) {
	t, err := s.tenants.FindByID(id)
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

	if err := s.tenants.Update(t); err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return t, nil
}

func (s *service) DeleteNegocio(id uint) error {
	if err := s.tenants.Delete(id); err != nil {
		return apperr.From(err, "negocio no encontrado")
	}
	return nil
}

// SetSuspension writes the suspension axis directly. The revision job
// may re-suspend an unsuspended negocio on its next sweep if the
// underlying payment is still expired; durable restoration needs a
// PAGADO payment covering the current period.
func (s *service) SetSuspension(id uint, suspendido bool, motivo string) (*tenant.Tenant, error) {
	fields := map[string]interface{}{"suspendido": suspendido}
	if suspendido {
		if motivo == "" {
			motivo = "Suspensión manual"
		}
		fields["motivo_suspension"] = motivo
	} else {
		fields["motivo_suspension"] = ""
	}

	if err := s.tenants.UpdateFields(id, fields); err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	t, err := s.tenants.FindByID(id)
	if err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return t, nil
}

func (s *service) SetActivo(id uint, activo bool) (*tenant.Tenant, error) {
	if err := s.tenants.UpdateFields(id, map[string]interface{}{"activo": activo}); err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	t, err := s.tenants.FindByID(id)
	if err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return t, nil
}

// =============================
// Usuarios
// =============================

type UsuarioInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nombre   string `json:"nombre" binding:"required"`
	Apellido string `json:"apellido"`
	Rol      string `json:"rol" binding:"required"`
	TenantID *uint  `json:"negocioId"`
}

func (s *service) ListUsuarios(rol string, tenantID *uint, limit, offset int) ([]auth.User, int64, error) {
	return s.users.List(rol, tenantID, limit, offset)
}

func (s *service) CreateUsuario(in UsuarioInput) (*auth.User, error) {
	switch in.Rol {
	case auth.RolSuperadmin, auth.RolAdmin, auth.RolCliente:
	default:
		return nil, apperr.Validation("rol inválido: " + in.Rol)
	}
	if in.Rol != auth.RolSuperadmin && in.TenantID == nil {
		return nil, apperr.Validation("negocioId requerido para roles de negocio")
	}
	if in.TenantID != nil {
		if _, err := s.tenants.FindByID(*in.TenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.InvalidReference("el negocio referido no existe")
			}
			return nil, apperr.Internal(err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &auth.User{
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Rol:          in.Rol,
		TenantID:     in.TenantID,
		Activo:       true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, apperr.From(err, "usuario no encontrado")
	}
	return u, nil
}

type UsuarioUpdateInput struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Activo   *bool  `json:"activo"`
}

func (s *service) UpdateUsuario(id uint, in UsuarioUpdateInput) (*auth.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.From(err, "usuario no encontrado")
	}

	if in.Nombre != "" {
		u.Nombre = in.Nombre
	}
	if in.Apellido != "" {
		u.Apellido = in.Apellido
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}

	if err := s.users.Update(u); err != nil {
		return nil, apperr.From(err, "usuario no encontrado")
	}
	return u, nil
}

func (s *service) DeleteUsuario(id uint) error {
	if err := s.users.Delete(id); err != nil {
		return apperr.From(err, "usuario no encontrado")
	}
	return nil
}
