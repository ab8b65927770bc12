package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/draftbook/clinic-management-backend/config"
	"github.com/draftbook/clinic-management-backend/internal/appointment"
	"github.com/draftbook/clinic-management-backend/internal/auditlog"
	"github.com/draftbook/clinic-management-backend/internal/auth"
	"github.com/draftbook/clinic-management-backend/internal/client"
	"github.com/draftbook/clinic-management-backend/internal/clientpayment"
	"github.com/draftbook/clinic-management-backend/internal/document"
	"github.com/draftbook/clinic-management-backend/internal/notification"
	"github.com/draftbook/clinic-management-backend/internal/prescription"
	"github.com/draftbook/clinic-management-backend/internal/reports"
	"github.com/draftbook/clinic-management-backend/internal/subscription"
	"github.com/draftbook/clinic-management-backend/internal/superadmin"
	"github.com/draftbook/clinic-management-backend/internal/tenant"
	"github.com/draftbook/clinic-management-backend/middleware"
)

// gateStore adapts the auth and tenant repositories to what the
// authorization gate needs.
type gateStore struct {
	users   auth.Repository
	tenants tenant.Repository
}

func (g gateStore) UserForGate(id uint) (*middleware.GateUser, error) {
	u, err := g.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &middleware.GateUser{
		ID:       u.ID,
		Email:    u.Email,
		Rol:      u.Rol,
		TenantID: u.TenantID,
		Activo:   u.Activo,
	}, nil
}

func (g gateStore) TenantAvailability(id uint) (bool, bool, error) {
	t, err := g.tenants.FindByID(id)
	if err != nil {
		return false, false, err
	}
	return t.Activo, t.Suspendido, nil
}

// Deps exposes the services the bootstrap needs after wiring (the
// revision scheduler runs over the subscription service).
type Deps struct {
	Subscriptions subscription.Service
}

// Setup wires repositories, services and handlers and registers every
// route group. The DB handle is injected; nothing here reaches for
// globals.
func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB) Deps {
	// Repositories
	tenantRepo := tenant.NewRepository(db)
	authRepo := auth.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)
	clientRepo := client.NewRepository(db)
	appointmentRepo := appointment.NewRepository(db)
	prescriptionRepo := prescription.NewRepository(db)
	documentRepo := document.NewRepository(db)
	clientPaymentRepo := clientpayment.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)
	reportsRepo := reports.NewRepository(db)

	// Services
	authSvc := auth.NewService(authRepo, tenantRepo, cfg)
	tenantSvc := tenant.NewService(tenantRepo)
	subscriptionSvc := subscription.NewService(subscriptionRepo)
	notificationSvc := notification.NewService(notificationRepo)
	appointmentSvc := appointment.NewService(appointmentRepo, clientRepo, notificationSvc)
	prescriptionSvc := prescription.NewService(prescriptionRepo, clientRepo, appointmentRepo)
	documentSvc := document.NewService(documentRepo, clientRepo)
	clientPaymentSvc := clientpayment.NewService(clientPaymentRepo, clientRepo, appointmentRepo)
	clientSvc := client.NewService(clientRepo, appointmentRepo, prescriptionRepo, documentRepo, clientPaymentRepo)
	auditSvc := auditlog.NewService(auditRepo)
	reportsSvc := reports.NewService(reportsRepo)
	superadminSvc := superadmin.NewService(tenantRepo, authRepo, subscriptionRepo)

	// Handlers
	authHandler := auth.NewHandler(authSvc)
	tenantHandler := tenant.NewHandler(tenantSvc)
	clientHandler := client.NewHandler(clientSvc)
	appointmentHandler := appointment.NewHandler(appointmentSvc)
	prescriptionHandler := prescription.NewHandler(prescriptionSvc, tenantRepo)
	documentHandler := document.NewHandler(documentSvc)
	clientPaymentHandler := clientpayment.NewHandler(clientPaymentSvc)
	notificationHandler := notification.NewHandler(notificationSvc)
	reportsHandler := reports.NewHandler(reportsSvc, tenantRepo)
	auditHandler := auditlog.NewHandler(auditSvc)
	superadminHandler := superadmin.NewHandler(superadminSvc, subscriptionSvc, reportsSvc, auditSvc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())

	// Public
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/registro", authHandler.Register)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(cfg, gateStore{users: authRepo, tenants: tenantRepo}))

	// Tenant-scoped administration
	admin := authenticated.Group("/admin")
	{
		admin.GET("/estadisticas", middleware.Require(middleware.OpEstadisticas), reportsHandler.AdminStats)

		clientes := admin.Group("/clientes")
		{
			clientes.GET("", middleware.Require(middleware.OpClientesRead), clientHandler.List)
			clientes.GET("/buscar", middleware.Require(middleware.OpClientesRead), clientHandler.Search)
			clientes.GET("/:id", middleware.Require(middleware.OpClientesRead), clientHandler.Get)
			clientes.GET("/:id/expediente", middleware.Require(middleware.OpClientesRead), clientHandler.GetExpediente)
			clientes.POST("", middleware.Require(middleware.OpClientesWrite), clientHandler.Create)
			clientes.PUT("/:id", middleware.Require(middleware.OpClientesWrite), clientHandler.Update)
			clientes.DELETE("/:id", middleware.Require(middleware.OpClientesWrite), clientHandler.Delete)
		}

		citas := admin.Group("/citas")
		{
			citas.GET("", middleware.Require(middleware.OpCitasRead), appointmentHandler.List)
			citas.GET("/:id", middleware.Require(middleware.OpCitasRead), appointmentHandler.Get)
			citas.POST("", middleware.Require(middleware.OpCitasWrite), appointmentHandler.Create)
			citas.PUT("/:id", middleware.Require(middleware.OpCitasWrite), appointmentHandler.Update)
			citas.DELETE("/:id", middleware.Require(middleware.OpCitasWrite), appointmentHandler.Delete)
		}

		recetas := admin.Group("/recetas")
		{
			recetas.GET("", middleware.Require(middleware.OpRecetasRead), prescriptionHandler.List)
			recetas.GET("/:id", middleware.Require(middleware.OpRecetasRead), prescriptionHandler.Get)
			recetas.GET("/:id/pdf", middleware.Require(middleware.OpRecetasRead), prescriptionHandler.DownloadPDF)
			recetas.POST("", middleware.Require(middleware.OpRecetasWrite), prescriptionHandler.Create)
			recetas.PUT("/:id", middleware.Require(middleware.OpRecetasWrite), prescriptionHandler.Update)
			recetas.DELETE("/:id", middleware.Require(middleware.OpRecetasWrite), prescriptionHandler.Delete)
		}

		documentos := admin.Group("/documentos")
		{
			documentos.GET("", middleware.Require(middleware.OpDocumentosRead), documentHandler.List)
			documentos.POST("", middleware.Require(middleware.OpDocumentosWrite), documentHandler.Create)
			documentos.DELETE("/:id", middleware.Require(middleware.OpDocumentosWrite), documentHandler.Delete)
		}

		pagosCliente := admin.Group("/pagos-cliente")
		pagosCliente.Use(middleware.Require(middleware.OpPagosCliente))
		{
			pagosCliente.GET("", clientPaymentHandler.List)
			pagosCliente.GET("/:id", clientPaymentHandler.Get)
			pagosCliente.POST("", clientPaymentHandler.Create)
			pagosCliente.PUT("/:id", clientPaymentHandler.Update)
			pagosCliente.DELETE("/:id", clientPaymentHandler.Delete)
		}

		notificaciones := admin.Group("/notificaciones")
		notificaciones.Use(middleware.Require(middleware.OpNotificaciones))
		{
			notificaciones.GET("", notificationHandler.List)
			notificaciones.PATCH("/:id/leida", notificationHandler.MarkRead)
		}
	}

	// Negocio profile & reporting
	negocio := authenticated.Group("/negocio")
	{
		negocio.GET("/perfil", middleware.Require(middleware.OpNegocioPerfil), tenantHandler.GetProfile)
		negocio.PUT("/perfil", middleware.Require(middleware.OpNegocioPerfil), tenantHandler.UpdateProfile)
		negocio.GET("/dashboard", middleware.Require(middleware.OpNegocioReportes), reportsHandler.Dashboard)
		negocio.GET("/reporte-mensual", middleware.Require(middleware.OpNegocioReportes), reportsHandler.MonthlyReport)
	}

	// Platform administration
	sa := authenticated.Group("/superadmin")
	sa.Use(middleware.Require(middleware.OpPlataforma))
	{
		sa.GET("/estadisticas", superadminHandler.Stats)
		sa.GET("/actividad", superadminHandler.Activity)

		sa.GET("/negocios", superadminHandler.ListNegocios)
		sa.POST("/negocios", superadminHandler.CreateNegocio)
		sa.PUT("/negocios/:id", superadminHandler.UpdateNegocio)
		sa.DELETE("/negocios/:id", superadminHandler.DeleteNegocio)
		sa.PATCH("/negocios/:id/suspender", superadminHandler.SuspenderNegocio)
		sa.PATCH("/negocios/:id/activar", superadminHandler.ActivarNegocio)
		sa.GET("/negocios/:id/estadisticas", superadminHandler.NegocioStats)

		sa.GET("/pagos", superadminHandler.ListPagos)
		sa.PATCH("/pagos/:id", superadminHandler.UpdatePago)
		sa.POST("/pagos/manual", superadminHandler.CreatePagoManual)

		sa.GET("/usuarios", superadminHandler.ListUsuarios)
		sa.POST("/usuarios", superadminHandler.CreateUsuario)
		sa.PUT("/usuarios/:id", superadminHandler.UpdateUsuario)
		sa.DELETE("/usuarios/:id", superadminHandler.DeleteUsuario)

		sa.POST("/revisar-pagos", superadminHandler.RevisarPagos)
		sa.GET("/auditlogs", auditHandler.List)
	}

	return Deps{Subscriptions: subscriptionSvc}
}
