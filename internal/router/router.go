package router

import (
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/access"
	"github.com/GenturixHub/Genturix-sub003/internal/alerts"
	"github.com/GenturixHub/Genturix-sub003/internal/config"
	"github.com/GenturixHub/Genturix-sub003/internal/handler"
	"github.com/GenturixHub/Genturix-sub003/internal/infra"
	"github.com/GenturixHub/Genturix-sub003/internal/middleware"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"
	"github.com/GenturixHub/Genturix-sub003/internal/service"
	"github.com/GenturixHub/Genturix-sub003/internal/wizard"
	"github.com/GenturixHub/Genturix-sub003/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, pricingCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Domain))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	pricingClient := infra.NewPricingClient(cfg.PricingEngineURL)
	gatewayClient := infra.NewGatewayClient(cfg.GatewayURL, cfg.GatewayAPIKey)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	condoRepo := repository.NewCondominioRepository(db)
	susRepo := repository.NewSuscripcionRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	reservaRepo := repository.NewReservaRepository(db)
	cursoRepo := repository.NewCursoRepository(db)
	notifRepo := repository.NewNotificacionRepository(db)
	pagoRepo := repository.NewPagoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, rdb, cfg)
	notifSvc := service.NewNotificacionService(notifRepo)
	// Repeats a warning while any tenant sits at full seat capacity.
	capacityAlert := alerts.NewService(alerts.LogSounder{Msg: "seat capacity exhausted"}, time.Minute)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, susRepo, notifSvc, capacityAlert)
	billingSvc := service.NewBillingService(pricingClient, pricingCB, rdb, susRepo, usuarioRepo)
	onboardingSvc := service.NewOnboardingService(
		wizard.NewRedisDraftStore(rdb), condoRepo, usuarioRepo, susRepo, areaRepo, billingSvc, dispatcher)
	reservaSvc := service.NewReservaService(areaRepo, reservaRepo, condoRepo)
	cursoSvc := service.NewCursoService(cursoRepo, condoRepo)
	pagoSvc := service.NewPagoService(
		pagoRepo, usuarioRepo, condoRepo, gatewayClient, notifSvc, dispatcher,
		cfg.PDFStoragePath, cfg.Domain)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	onboardingH := handler.NewOnboardingHandler(onboardingSvc)
	billingH := handler.NewBillingHandler(billingSvc)
	reservasH := handler.NewReservasHandler(reservaSvc)
	cursosH := handler.NewCursosHandler(cursoSvc)
	notificacionesH := handler.NewNotificacionesHandler(notifSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, pricingCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Gateway webhook — authenticated by shared key, not JWT
	r.POST("/v1/pagos/webhook", pagosH.Webhook(cfg.GatewayAPIKey))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)

	// The forced password change is reachable while the temporary password
	// is still active; everything else below requires a completed change.
	v1.POST("/auth/change-password", authH.ChangePassword)

	v1.Use(middleware.RequirePasswordChanged())
	{
		v1.POST("/auth/select-role", authH.SelectRole)

		// Onboarding wizard — SuperAdmin only
		onboarding := v1.Group("/onboarding", middleware.RequireRole(access.RoleSuperAdmin))
		{
			onboarding.GET("/draft", onboardingH.GetDraft)
			onboarding.PUT("/draft", onboardingH.SaveDraft)
			onboarding.DELETE("/draft", onboardingH.Cancel)
			onboarding.POST("/advance", onboardingH.Advance)
			onboarding.POST("/retreat", onboardingH.Retreat)
			onboarding.POST("/validate-unique", onboardingH.ValidateUnique)
			onboarding.POST("/submit", onboardingH.Submit)
		}

		// Billing preview is used by the wizard (SuperAdmin) and by tenant
		// admins adjusting their subscription.
		v1.GET("/billing/preview", middleware.RequireRole(access.RoleSuperAdmin, access.RoleAdministrador), billingH.Preview)
		billing := v1.Group("/billing", middleware.RequireRole(access.RoleAdministrador))
		{
			billing.GET("/suscripcion", billingH.GetSuscripcion)
			billing.PUT("/suscripcion", billingH.ActualizarSuscripcion)
		}

		// User management — tenant admins
		usuarios := v1.Group("/usuarios", middleware.RequireRole(access.RoleAdministrador))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.PATCH("/:id/bloquear", usuariosH.Bloquear)
			usuarios.PATCH("/:id/suspender", usuariosH.Suspender)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
			usuarios.DELETE("/:id", usuariosH.Eliminar)
		}

		// Common areas — admin writes, any tenant member reserves
		areas := v1.Group("/areas", middleware.RequireRole(access.RoleAdministrador))
		{
			areas.POST("", reservasH.CrearArea)
			areas.DELETE("/:id", reservasH.DesactivarArea)
		}
		v1.GET("/areas", reservasH.ListarAreas)
		v1.POST("/reservas", reservasH.CrearReserva)
		v1.GET("/reservas", reservasH.ListarReservas)
		v1.DELETE("/reservas/:id", reservasH.Cancelar)

		// Learning module — admins author, students consume
		cursosAdmin := v1.Group("/cursos", middleware.RequireRole(access.RoleAdministrador, access.RoleHR))
		{
			cursosAdmin.POST("", cursosH.Crear)
			cursosAdmin.POST("/:id/lecciones", cursosH.CrearLeccion)
		}
		v1.GET("/cursos", cursosH.Listar)
		v1.POST("/cursos/:id/inscribir", cursosH.Inscribir)
		v1.POST("/cursos/:id/lecciones/:leccionId/completar", cursosH.CompletarLeccion)
		v1.GET("/cursos/:id/progreso", cursosH.Progreso)

		// Notifications
		v1.GET("/notificaciones", notificacionesH.Listar)
		v1.PATCH("/notificaciones/:id/leida", notificacionesH.MarcarLeida)
		v1.POST("/notificaciones/leidas", notificacionesH.MarcarTodasLeidas)

		// Payments
		v1.POST("/pagos/checkout", pagosH.Checkout)
		v1.GET("/pagos", pagosH.Listar)
		v1.GET("/pagos/:referencia", pagosH.Get)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
