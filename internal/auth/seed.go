package auth

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/config"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
)

// SeedSuperadmin creates the platform superadmin on first boot.
func SeedSuperadmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.SuperadminPassword == "" {
		log.Println("⚠️ SUPERADMIN_PASSWORD not set, skipping superadmin seed")
		return nil
	}

	var existing User
	err := db.Where("email = ?", cfg.SuperadminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperadminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		Email:        cfg.SuperadminEmail,
		PasswordHash: string(hash),
		Nombre:       "Super",
		Apellido:     "Admin",
		Rol:          RolSuperadmin,
		Activo:       true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Superadmin seeded (%s)", cfg.SuperadminEmail)
	return nil
}

// SeedDemoTenant creates the demo negocio used in local development.
func SeedDemoTenant(db *gorm.DB) error {
	var existing tenant.Tenant
	err := db.Where("slug = ?", "demo").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	demo := &tenant.Tenant{
		Slug:   "demo",
		Nombre: "Clínica Demo",
		Email:  "demo@draftbook.com",
		Activo: true,
	}
	if err := db.Create(demo).Error; err != nil {
		return err
	}
	log.Println("✅ Demo negocio seeded (slug demo)")
	return nil
}
