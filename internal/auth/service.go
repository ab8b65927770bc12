package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/config"
	"github.com/draftbook/clinic-management-backend/internal/apperr"
	"github.com/draftbook/clinic-management-backend/internal/subscription"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
	"github.com/draftbook/clinic-management-backend/utils"
)

// Role names as stored in usuarios.rol
const (
	RolSuperadmin = "SUPERADMIN"
	RolAdmin      = "ADMIN"
	RolCliente    = "CLIENT"
)

const resetTokenTTL = 30 * time.Minute

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Login(in LoginInput) (*TokenPair, *User, error)
	Register(in RegisterInput) (*User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (*User, error)

	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo          Repository
	tenants       tenant.Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, tenants tenant.Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		tenants:       tenants,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Unauthenticated("credenciales inválidas")
		}
		return nil, nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, apperr.Unauthenticated("credenciales inválidas")
	}

	if !user.Activo {
		return nil, nil, apperr.UserBlocked()
	}

	// The user's negocio must be operational before tokens are issued.
	if user.TenantID != nil {
		t, err := s.tenants.FindByID(*user.TenantID)
		if err != nil {
			return nil, nil, apperr.Internal(err)
		}
		if !t.Disponible() {
			return nil, nil, apperr.TenantUnavailable(t.Suspendido, t.Activo)
		}
	}

	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	refresh, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Nombre        string `json:"nombre" binding:"required"`
	Apellido      string `json:"apellido"`
	NombreNegocio string `json:"nombreNegocio"`
	Telefono      string `json:"telefono"`
	Direccion     string `json:"direccion"`
}

// Register creates a negocio with its admin, or a tenant-less platform
// user when no business name is given. The negocio, the admin and the
// first PENDIENTE subscription period commit in one transaction.
func (s *service) Register(in RegisterInput) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Activo:       true,
	}

	if in.NombreNegocio == "" {
		user.Rol = RolSuperadmin
		if err := s.repo.Create(user); err != nil {
			return nil, apperr.From(err, "usuario no encontrado")
		}
		return user, nil
	}

	slug, err := tenant.UniqueSlug(s.tenants, in.NombreNegocio)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	t := &tenant.Tenant{
		Slug:      slug,
		Nombre:    in.NombreNegocio,
		Email:     user.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Activo:    true,
	}

	user.Rol = RolAdmin

	now := time.Now()
	firstPayment := &subscription.Payment{
		Monto:       0,
		Moneda:      "MXN",
		FechaInicio: now,
		FechaFin:    now.AddDate(0, 1, 0),
		Estado:      subscription.EstadoPendiente,
	}

	if err := s.repo.CreateTenantWithAdmin(t, user, firstPayment); err != nil {
		return nil, apperr.From(err, "negocio no encontrado")
	}
	return user, nil
}

// =============================
// Tokens
// =============================

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"rol":     user.Rol,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	if user.TenantID != nil {
		claims["negocio_id"] = *user.TenantID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Unauthenticated("refresh token inválido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.Unauthenticated("claims inválidos")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return "", apperr.Unauthenticated("user_id ausente en el token")
	}

	user, err := s.repo.FindByID(uint(userIDFloat))
	if err != nil {
		return "", apperr.Unauthenticated("usuario no encontrado")
	}
	if !user.Activo {
		return "", apperr.UserBlocked()
	}

	access, err := s.generateAccessToken(user)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return access, nil
}

func (s *service) GetUserByID(userID uint) (*User, error) {
	u, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, apperr.From(err, "usuario no encontrado")
	}
	return u, nil
}

// =============================
// Password reset
// =============================

func (s *service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(email))
	if err != nil {
		// Do not reveal whether the email exists.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperr.Internal(err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", apperr.Internal(err)
	}
	token := hex.EncodeToString(buf)

	if err := utils.StoreResetToken(ctx, token, user.ID, resetTokenTTL); err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("la contraseña debe tener al menos 8 caracteres")
	}

	userID, err := utils.ConsumeResetToken(ctx, token)
	if err != nil {
		return apperr.Unauthenticated("token de restablecimiento inválido o expirado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.repo.UpdateFields(userID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return apperr.From(err, "usuario no encontrado")
	}
	return nil
}
