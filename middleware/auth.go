package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/draftbook/clinic-management-backend/config"
	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

const principalKey = "principal"

// Principal is the authenticated identity for the current request. It
// is resolved once by AuthMiddleware and never mutated afterwards;
// handlers read the effective tenant from here instead of re-deriving
// it from headers.
type Principal struct {
	UserID            uint
	Email             string
	Rol               string
	TenantID          *uint
	EffectiveTenantID *uint
}

// RequireTenant returns the effective tenant or a validation error for
// principals with no tenant context (tenant-less superadmin hitting a
// tenant-scoped write).
func (p Principal) RequireTenant() (uint, error) {
	if p.EffectiveTenantID == nil {
		return 0, apperr.Validation("negocio no resuelto para esta operación")
	}
	return *p.EffectiveTenantID, nil
}

// GateUser is the slice of the user record the gate needs.
type GateUser struct {
	ID       uint
	Email    string
	Rol      string
	TenantID *uint
	Activo   bool
}

// GateStore provides the lookups the gate performs. Implemented in the
// routes wiring over the auth and tenant repositories.
type GateStore interface {
	UserForGate(id uint) (*GateUser, error)
	TenantAvailability(id uint) (activo bool, suspendido bool, err error)
}

// AuthMiddleware verifies the bearer token, loads the user, checks the
// account and tenant state, and attaches an immutable Principal.
func AuthMiddleware(cfg *config.Config, store GateStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apperr.Respond(c, apperr.Unauthenticated("falta el encabezado Authorization"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apperr.Respond(c, apperr.Unauthenticated("encabezado Authorization inválido"))
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			apperr.Respond(c, apperr.Unauthenticated("token inválido o expirado"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			apperr.Respond(c, apperr.Unauthenticated("claims inválidos"))
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			apperr.Respond(c, apperr.Unauthenticated("user_id ausente en el token"))
			return
		}

		user, err := store.UserForGate(uint(userIDFloat))
		if err != nil {
			apperr.Respond(c, apperr.Unauthenticated("usuario no encontrado"))
			return
		}
		if !user.Activo {
			apperr.Respond(c, apperr.UserBlocked())
			return
		}

		// A user's own tenant must be operational regardless of the
		// requested operation.
		if user.TenantID != nil {
			activo, suspendido, err := store.TenantAvailability(*user.TenantID)
			if err != nil {
				apperr.Respond(c, apperr.Internal(err))
				return
			}
			if !activo || suspendido {
				apperr.Respond(c, apperr.TenantUnavailable(suspendido, activo))
				return
			}
		}

		p := Principal{
			UserID:   user.ID,
			Email:    user.Email,
			Rol:      user.Rol,
			TenantID: user.TenantID,
		}
		p.EffectiveTenantID = user.TenantID

		// A superadmin may act on behalf of a negocio via header, query
		// or path param; the target must exist.
		if user.Rol == RolSuperadmin && user.TenantID == nil {
			if requested := requestedTenantID(c); requested != nil {
				if _, _, err := store.TenantAvailability(*requested); err != nil {
					apperr.Respond(c, apperr.NotFound("negocio no encontrado"))
					return
				}
				p.EffectiveTenantID = requested
			}
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// requestedTenantID reads the superadmin's tenant selector from the
// X-Tenant-ID header, the negocio_id query param or a :negocioId path
// param, in that order.
func requestedTenantID(c *gin.Context) *uint {
	candidates := []string{
		c.GetHeader("X-Tenant-ID"),
		c.Query("negocio_id"),
		c.Param("negocioId"),
	}
	for _, raw := range candidates {
		if raw == "" || raw == "all" {
			continue
		}
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			return &v
		}
	}
	return nil
}

// PrincipalFrom returns the request principal set by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
