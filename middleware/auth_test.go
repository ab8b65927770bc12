package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftbook/clinic-management-backend/config"
)

const testSecret = "test-secret"

type fakeGateStore struct {
	users   map[uint]*GateUser
	tenants map[uint]struct{ activo, suspendido bool }
}

func (f *fakeGateStore) UserForGate(id uint) (*GateUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, assert.AnError
	}
	return u, nil
}

func (f *fakeGateStore) TenantAvailability(id uint) (bool, bool, error) {
	t, ok := f.tenants[id]
	if !ok {
		return false, false, assert.AnError
	}
	return t.activo, t.suspendido, nil
}

func signToken(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(userID),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func setupRouter(store GateStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTAccessSecret: testSecret}

	r := gin.New()
	r.GET("/protegido", AuthMiddleware(cfg, store), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"userId":            p.UserID,
			"rol":               p.Rol,
			"effectiveTenantId": p.EffectiveTenantID,
		})
	})
	return r
}

func doRequest(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := setupRouter(&fakeGateStore{})
	w := doRequest(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := setupRouter(&fakeGateStore{})
	w := doRequest(r, map[string]string{"Authorization": "Bearer no-es-un-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBlockedUser(t *testing.T) {
	store := &fakeGateStore{
		users: map[uint]*GateUser{
			1: {ID: 1, Email: "ana@demo.com", Rol: RolAdmin, Activo: false},
		},
	}
	r := setupRouter(store)
	w := doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, 1)})

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "USUARIO_BLOQUEADO", body["codigo"])
}

func TestAuthMiddlewareSuspendedTenant(t *testing.T) {
	tid := uint(9)
	store := &fakeGateStore{
		users: map[uint]*GateUser{
			1: {ID: 1, Email: "ana@demo.com", Rol: RolAdmin, TenantID: &tid, Activo: true},
		},
		tenants: map[uint]struct{ activo, suspendido bool }{
			9: {activo: true, suspendido: true},
		},
	}
	r := setupRouter(store)
	w := doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, 1)})

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NEGOCIO_SUSPENDIDO", body["codigo"])
	assert.Equal(t, true, body["suspendido"])
	assert.Equal(t, true, body["activo"])
}

func TestAuthMiddlewareInactiveTenant(t *testing.T) {
	tid := uint(9)
	store := &fakeGateStore{
		users: map[uint]*GateUser{
			1: {ID: 1, Email: "ana@demo.com", Rol: RolAdmin, TenantID: &tid, Activo: true},
		},
		tenants: map[uint]struct{ activo, suspendido bool }{
			9: {activo: false, suspendido: false},
		},
	}
	r := setupRouter(store)
	w := doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, 1)})

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NEGOCIO_INACTIVO", body["codigo"])
}

func TestAuthMiddlewareHappyPath(t *testing.T) {
	tid := uint(9)
	store := &fakeGateStore{
		users: map[uint]*GateUser{
			1: {ID: 1, Email: "ana@demo.com", Rol: RolAdmin, TenantID: &tid, Activo: true},
		},
		tenants: map[uint]struct{ activo, suspendido bool }{
			9: {activo: true, suspendido: false},
		},
	}
	r := setupRouter(store)
	w := doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, 1)})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["userId"])
	assert.Equal(t, RolAdmin, body["rol"])
	assert.Equal(t, float64(9), body["effectiveTenantId"])
}

func TestAuthMiddlewareSuperadminTenantHeader(t *testing.T) {
	store := &fakeGateStore{
		users: map[uint]*GateUser{
			2: {ID: 2, Email: "root@plataforma.com", Rol: RolSuperadmin, Activo: true},
		},
		tenants: map[uint]struct{ activo, suspendido bool }{
			4: {activo: true, suspendido: false},
		},
	}
	r := setupRouter(store)

	// Without selector: tenant-less principal.
	w := doRequest(r, map[string]string{"Authorization": "Bearer " + signToken(t, 2)})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["effectiveTenantId"])

	// With X-Tenant-ID: effective tenant resolved to the target.
	w = doRequest(r, map[string]string{
		"Authorization": "Bearer " + signToken(t, 2),
		"X-Tenant-ID":   "4",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(4), body["effectiveTenantId"])

	// Unknown target negocio: 404.
	w = doRequest(r, map[string]string{
		"Authorization": "Bearer " + signToken(t, 2),
		"X-Tenant-ID":   "77",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireTenant(t *testing.T) {
	_, err := Principal{}.RequireTenant()
	assert.Error(t, err)

	tid := uint(3)
	got, err := Principal{EffectiveTenantID: &tid}.RequireTenant()
	require.NoError(t, err)
	assert.Equal(t, uint(3), got)
}
