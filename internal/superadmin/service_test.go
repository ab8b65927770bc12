package superadmin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/auth"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
)

type fakeTenantRepo struct {
	tenant.Repository
	byID       map[uint]*tenant.Tenant
	lastFields map[string]interface{}
}

func (f *fakeTenantRepo) FindByID(id uint) (*tenant.Tenant, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTenantRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.lastFields = fields
	return nil
}

type fakeUserRepo struct {
	auth.Repository
	created *auth.User
}

func (f *fakeUserRepo) Create(u *auth.User) error {
	f.created = u
	return nil
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	return ae.Kind
}

func TestSetSuspensionDefaultsMotivo(t *testing.T) {
	tenants := &fakeTenantRepo{byID: map[uint]*tenant.Tenant{4: {ID: 4, Activo: true}}}
	svc := &service{tenants: tenants}

	_, err := svc.SetSuspension(4, true, "")
	require.NoError(t, err)
	assert.Equal(t, true, tenants.lastFields["suspendido"])
	assert.Equal(t, "Suspensión manual", tenants.lastFields["motivo_suspension"])
}

func TestSetSuspensionClearsMotivoOnLift(t *testing.T) {
	tenants := &fakeTenantRepo{byID: map[uint]*tenant.Tenant{4: {ID: 4, Activo: true, Suspendido: true}}}
	svc := &service{tenants: tenants}

	_, err := svc.SetSuspension(4, false, "")
	require.NoError(t, err)
	assert.Equal(t, false, tenants.lastFields["suspendido"])
	assert.Equal(t, "", tenants.lastFields["motivo_suspension"])
}

func TestSetSuspensionUnknownNegocio(t *testing.T) {
	svc := &service{tenants: &fakeTenantRepo{byID: map[uint]*tenant.Tenant{}}}
	_, err := svc.SetSuspension(99, true, "")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestCreateUsuarioInvalidRol(t *testing.T) {
	svc := &service{users: &fakeUserRepo{}, tenants: &fakeTenantRepo{}}
	_, err := svc.CreateUsuario(UsuarioInput{
		Email: "x@demo.com", Password: "secreta123", Nombre: "X", Rol: "DOCTOR",
	})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestCreateUsuarioAdminRequiresNegocio(t *testing.T) {
	svc := &service{users: &fakeUserRepo{}, tenants: &fakeTenantRepo{}}
	_, err := svc.CreateUsuario(UsuarioInput{
		Email: "x@demo.com", Password: "secreta123", Nombre: "X", Rol: auth.RolAdmin,
	})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestCreateUsuarioUnknownNegocio(t *testing.T) {
	tid := uint(99)
	svc := &service{users: &fakeUserRepo{}, tenants: &fakeTenantRepo{byID: map[uint]*tenant.Tenant{}}}
	_, err := svc.CreateUsuario(UsuarioInput{
		Email: "x@demo.com", Password: "secreta123", Nombre: "X",
		Rol: auth.RolAdmin, TenantID: &tid,
	})
	assert.Equal(t, apperr.KindInvalidReference, kindOf(t, err))
}

func TestCreateUsuarioOK(t *testing.T) {
	tid := uint(4)
	users := &fakeUserRepo{}
	tenants := &fakeTenantRepo{byID: map[uint]*tenant.Tenant{4: {ID: 4, Activo: true}}}
	svc := &service{users: users, tenants: tenants}

	u, err := svc.CreateUsuario(UsuarioInput{
		Email: "Ana@Demo.com", Password: "secreta123", Nombre: "Ana",
		Rol: auth.RolAdmin, TenantID: &tid,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@demo.com", u.Email)
	assert.True(t, u.Activo)
	assert.NotEqual(t, "secreta123", u.PasswordHash)
	assert.Same(t, u, users.created)
}
