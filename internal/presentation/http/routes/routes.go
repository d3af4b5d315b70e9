package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stationhq/fuelops-api/internal/config"
	"github.com/stationhq/fuelops-api/internal/domain/entity"
	domainRepo "github.com/stationhq/fuelops-api/internal/domain/repository"
	"github.com/stationhq/fuelops-api/internal/presentation/http/handler"
	"github.com/stationhq/fuelops-api/internal/presentation/http/middleware"
	"github.com/stationhq/fuelops-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Tenant  *handler.TenantHandler
	User    *handler.UserHandler
	Station *handler.StationHandler
	Shift   *handler.ShiftHandler
	Sale    *handler.SaleHandler
	Stock   *handler.StockHandler
	Report  *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication + tenant context required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Tenants
	registerTenantRoutes(protected, h)

	// Everything below operates on tenant-scoped data
	tenanted := protected.Group("")
	tenanted.Use(middleware.RequireTenant())

	registerStationRoutes(tenanted, h)
	registerShiftRoutes(tenanted, h, deps)
	registerSaleRoutes(tenanted, h, deps)
	registerStockRoutes(tenanted, h)
	registerReportRoutes(tenanted, h)
	registerUserRoutes(tenanted, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.POST("", middleware.RequireRole(entity.RoleOwner), h.Tenant.Create)
		tenants.GET("/:id", h.Tenant.Get)
		tenants.PUT("/:id", middleware.RequireRole(entity.RoleOwner), h.Tenant.Update)
	}
}

func registerStationRoutes(tenanted *gin.RouterGroup, h *Handlers) {
	manage := middleware.RequireRole(entity.RoleOwner, entity.RoleManager)

	machines := tenanted.Group("/machines")
	{
		machines.GET("", h.Station.ListMachines)
		machines.GET("/:id", h.Station.GetMachine)
		machines.POST("", manage, h.Station.CreateMachine)
		machines.PUT("/:id", manage, h.Station.UpdateMachine)
		machines.DELETE("/:id", manage, h.Station.DeleteMachine)
	}

	nozzles := tenanted.Group("/nozzles")
	{
		nozzles.GET("", h.Station.ListNozzles)
		nozzles.POST("", manage, h.Station.CreateNozzle)
		nozzles.PUT("/:id", manage, h.Station.UpdateNozzle)
	}

	tanks := tenanted.Group("/tanks")
	{
		tanks.GET("", h.Station.ListTanks)
		tanks.GET("/:id", h.Station.GetTank)
		tanks.GET("/:id/entries", h.Stock.ListEntries)
		tanks.POST("", manage, h.Station.CreateTank)
		tanks.PUT("/:id", manage, h.Station.UpdateTank)
	}

	fuelTypes := tenanted.Group("/fuel-types")
	{
		fuelTypes.GET("", h.Station.ListFuelTypes)
		fuelTypes.POST("", manage, h.Station.CreateFuelType)
		fuelTypes.GET("/:id/rates", h.Station.ListFuelRates)
		fuelTypes.GET("/:id/rates/current", h.Station.GetEffectiveRate)
		fuelTypes.POST("/:id/rates", manage, h.Station.SetFuelRate)
	}
}

func registerShiftRoutes(tenanted *gin.RouterGroup, h *Handlers, deps *Deps) {
	shifts := tenanted.Group("/shifts")
	{
		shifts.GET("", h.Shift.List)
		shifts.GET("/active", h.Shift.GetActive)
		shifts.GET("/:id", h.Shift.Get)
		shifts.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Shift.Start)
		// Closing settles money; workers hand over to a manager
		shifts.POST("/:id/close",
			middleware.RequireRole(entity.RoleOwner, entity.RoleManager),
			middleware.Idempotency(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
			}), h.Shift.Close)
	}
}

func registerSaleRoutes(tenanted *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := tenanted.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		// Sale recording uses idempotency middleware to prevent duplicates
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Record)
		sales.POST("/:id/void",
			middleware.RequireRole(entity.RoleOwner, entity.RoleManager),
			h.Sale.Void)
	}
}

func registerStockRoutes(tenanted *gin.RouterGroup, h *Handlers) {
	stock := tenanted.Group("/stock")
	stock.Use(middleware.RequireRole(entity.RoleOwner, entity.RoleManager))
	{
		stock.POST("/in", h.Stock.StockIn)
		stock.POST("/adjustments", h.Stock.Adjust)
		stock.POST("/transfers", h.Stock.Transfer)
	}
}

func registerReportRoutes(tenanted *gin.RouterGroup, h *Handlers) {
	reports := tenanted.Group("/reports")
	reports.Use(middleware.RequireRole(entity.RoleOwner, entity.RoleManager))
	{
		reports.GET("/daily-sales", h.Report.DailySales)
		reports.GET("/sales-by-fuel-type", h.Report.SalesByFuelType)
		reports.GET("/shift-variances", h.Report.ShiftVariances)
	}
}

func registerUserRoutes(tenanted *gin.RouterGroup, h *Handlers) {
	users := tenanted.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleOwner, entity.RoleManager))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
	}
}
