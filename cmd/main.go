package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/config"
	"github.com/draftbook/clinic-management-backend/database"
	"github.com/draftbook/clinic-management-backend/internal/appointment"
	"github.com/draftbook/clinic-management-backend/internal/auditlog"
	"github.com/draftbook/clinic-management-backend/internal/auth"
	"github.com/draftbook/clinic-management-backend/internal/client"
	"github.com/draftbook/clinic-management-backend/internal/clientpayment"
	"github.com/draftbook/clinic-management-backend/internal/document"
	"github.com/draftbook/clinic-management-backend/internal/notification"
	"github.com/draftbook/clinic-management-backend/internal/prescription"
	"github.com/draftbook/clinic-management-backend/internal/subscription"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
	"github.com/draftbook/clinic-management-backend/routes"
	"github.com/draftbook/clinic-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka
	utils.InitKafka(cfg)
	defer utils.CloseKafka()

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&tenant.Tenant{},
		&auth.User{},
		&subscription.Payment{},
		&client.Client{},
		&appointment.Appointment{},
		&prescription.Prescription{},
		&document.Document{},
		&clientpayment.Payment{},
		&notification.Notification{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed superadmin & demo negocio
	if err := auth.SeedSuperadmin(db, cfg); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed superadmin: %v", err))
	}
	if err := auth.SeedDemoTenant(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed demo negocio: %v", err))
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Tenant-ID", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	deps := routes.Setup(router, cfg, db)

	// Daily payment revision
	scheduler, err := subscription.StartScheduler(deps.Subscriptions)
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to start scheduler: %v", err))
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("⚠️ Scheduler shutdown: %v", err)
		}
	}()

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
