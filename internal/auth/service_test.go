package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/subscription"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(user *User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByEmail(email string) (*User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockUserRepo) FindByID(userID uint) (*User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockUserRepo) Update(user *User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) UpdateFields(userID uint, fields map[string]interface{}) error {
	return m.Called(userID, fields).Error(0)
}

func (m *mockUserRepo) Delete(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *mockUserRepo) List(rol string, tenantID *uint, limit, offset int) ([]User, int64, error) {
	args := m.Called(rol, tenantID, limit, offset)
	return args.Get(0).([]User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) CreateTenantWithAdmin(t *tenant.Tenant, admin *User, firstPayment *subscription.Payment) error {
	return m.Called(t, admin, firstPayment).Error(0)
}

type mockTenantRepo struct{ mock.Mock }

func (m *mockTenantRepo) Create(t *tenant.Tenant) error { return m.Called(t).Error(0) }

func (m *mockTenantRepo) FindByID(id uint) (*tenant.Tenant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) FindBySlug(slug string) (*tenant.Tenant, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) Update(t *tenant.Tenant) error { return m.Called(t).Error(0) }

func (m *mockTenantRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	return m.Called(id, fields).Error(0)
}

func (m *mockTenantRepo) Delete(id uint) error { return m.Called(id).Error(0) }

func (m *mockTenantRepo) List(search string, activo *bool, limit, offset int) ([]tenant.Tenant, int64, error) {
	args := m.Called(search, activo, limit, offset)
	return args.Get(0).([]tenant.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *mockTenantRepo) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func newTestService(users *mockUserRepo, tenants *mockTenantRepo) *service {
	return &service{
		repo:          users,
		tenants:       tenants,
		accessSecret:  "access",
		refreshSecret: "refresh",
		accessTTL:     time.Hour,
		refreshTTL:    24 * time.Hour,
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	return ae.Kind
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", "nadie@demo.com").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(users, new(mockTenantRepo))
	_, _, err := svc.Login(LoginInput{Email: "Nadie@Demo.com", Password: "secreta123"})
	assert.Equal(t, apperr.KindUnauthenticated, kindOf(t, err))
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", "ana@demo.com").Return(&User{
		ID: 1, Email: "ana@demo.com", PasswordHash: hashOf(t, "correcta123"), Activo: true,
	}, nil)

	svc := newTestService(users, new(mockTenantRepo))
	_, _, err := svc.Login(LoginInput{Email: "ana@demo.com", Password: "incorrecta"})
	assert.Equal(t, apperr.KindUnauthenticated, kindOf(t, err))
}

func TestLoginBlockedUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("FindByEmail", "ana@demo.com").Return(&User{
		ID: 1, Email: "ana@demo.com", PasswordHash: hashOf(t, "secreta123"), Activo: false,
	}, nil)

	svc := newTestService(users, new(mockTenantRepo))
	_, _, err := svc.Login(LoginInput{Email: "ana@demo.com", Password: "secreta123"})

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "USUARIO_BLOQUEADO", ae.Code)
}

func TestLoginSuspendedTenant(t *testing.T) {
	tid := uint(4)
	users := new(mockUserRepo)
	users.On("FindByEmail", "ana@demo.com").Return(&User{
		ID: 1, Email: "ana@demo.com", PasswordHash: hashOf(t, "secreta123"),
		Rol: RolAdmin, TenantID: &tid, Activo: true,
	}, nil)

	tenants := new(mockTenantRepo)
	tenants.On("FindByID", uint(4)).Return(&tenant.Tenant{
		ID: 4, Activo: true, Suspendido: true,
	}, nil)

	svc := newTestService(users, tenants)
	_, _, err := svc.Login(LoginInput{Email: "ana@demo.com", Password: "secreta123"})

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "NEGOCIO_SUSPENDIDO", ae.Code)
	assert.Equal(t, true, ae.Fields["suspendido"])
}

func TestLoginIssuesTokenPair(t *testing.T) {
	tid := uint(4)
	users := new(mockUserRepo)
	users.On("FindByEmail", "ana@demo.com").Return(&User{
		ID: 1, Email: "ana@demo.com", PasswordHash: hashOf(t, "secreta123"),
		Rol: RolAdmin, TenantID: &tid, Activo: true,
	}, nil)

	tenants := new(mockTenantRepo)
	tenants.On("FindByID", uint(4)).Return(&tenant.Tenant{ID: 4, Activo: true}, nil)

	svc := newTestService(users, tenants)
	pair, user, err := svc.Login(LoginInput{Email: "ana@demo.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, uint(1), user.ID)
}

func TestRegisterWithNegocio(t *testing.T) {
	users := new(mockUserRepo)
	tenants := new(mockTenantRepo)
	tenants.On("SlugExists", "clinica-sur").Return(false, nil)

	users.On("CreateTenantWithAdmin",
		mock.MatchedBy(func(tn *tenant.Tenant) bool {
			return tn.Slug == "clinica-sur" && tn.Nombre == "Clínica Sur" && tn.Activo
		}),
		mock.MatchedBy(func(u *User) bool {
			return u.Rol == RolAdmin && u.Email == "ana@demo.com" && u.Activo
		}),
		mock.MatchedBy(func(p *subscription.Payment) bool {
			return p.Estado == subscription.EstadoPendiente && p.Moneda == "MXN" &&
				p.FechaFin.After(p.FechaInicio)
		}),
	).Return(nil)

	svc := newTestService(users, tenants)
	user, err := svc.Register(RegisterInput{
		Email:         "Ana@Demo.com",
		Password:      "secreta123",
		Nombre:        "Ana",
		NombreNegocio: "Clínica Sur",
	})
	require.NoError(t, err)
	assert.Equal(t, RolAdmin, user.Rol)
	users.AssertExpectations(t)
}

func TestRegisterWithoutNegocio(t *testing.T) {
	users := new(mockUserRepo)
	users.On("Create", mock.MatchedBy(func(u *User) bool {
		return u.Rol == RolSuperadmin && u.TenantID == nil
	})).Return(nil)

	svc := newTestService(users, new(mockTenantRepo))
	user, err := svc.Register(RegisterInput{
		Email:    "root@plataforma.com",
		Password: "secreta123",
		Nombre:   "Root",
	})
	require.NoError(t, err)
	assert.Equal(t, RolSuperadmin, user.Rol)
	users.AssertNotCalled(t, "CreateTenantWithAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterTransactionFailure(t *testing.T) {
	users := new(mockUserRepo)
	tenants := new(mockTenantRepo)
	tenants.On("SlugExists", mock.Anything).Return(false, nil)
	users.On("CreateTenantWithAdmin", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("tx rolled back"))

	svc := newTestService(users, tenants)
	_, err := svc.Register(RegisterInput{
		Email:         "ana@demo.com",
		Password:      "secreta123",
		Nombre:        "Ana",
		NombreNegocio: "Clínica Sur",
	})
	assert.Equal(t, apperr.KindInternal, kindOf(t, err))
}

func TestRefreshRoundTrip(t *testing.T) {
	users := new(mockUserRepo)
	user := &User{ID: 1, Email: "ana@demo.com", Rol: RolAdmin, Activo: true}
	users.On("FindByID", uint(1)).Return(user, nil)

	svc := newTestService(users, new(mockTenantRepo))
	refresh, err := svc.generateRefreshToken(user)
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newTestService(new(mockUserRepo), new(mockTenantRepo))
	_, err := svc.Refresh("no-es-un-token")
	assert.Equal(t, apperr.KindUnauthenticated, kindOf(t, err))
}

func TestResetPasswordTooShort(t *testing.T) {
	svc := newTestService(new(mockUserRepo), new(mockTenantRepo))
	err := svc.ResetPassword(context.Background(), "cualquier-token", "corta")
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}
