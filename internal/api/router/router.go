package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asso-portal/config"
	"asso-portal/internal/api/handler"
	"asso-portal/internal/api/middleware"
	"asso-portal/internal/permission"
	"asso-portal/internal/repository"
	"asso-portal/internal/service"
	"asso-portal/pkg/jwt"
	"asso-portal/pkg/metrics"
	"asso-portal/pkg/redis"
)

// Setup builds the Gin engine with every route and middleware wired.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	svc *service.Service,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxSizeBytes + 1<<20))
	r.Use(metrics.Middleware())

	// ── Health and metrics ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ── Uploaded media ──
	r.Static(cfg.Upload.PublicPrefix, cfg.Upload.Dir)

	auth := middleware.JWTAuth(jwtMgr, rdb, repo.User, logger)
	maintenance := middleware.Maintenance(svc.Settings)
	loginLimit := middleware.RateLimit(rdb, 10, time.Minute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Authentication (no token required)
		v1.POST("/auth/login", loginLimit, h.Auth.Login)
		v1.POST("/auth/register", loginLimit, h.Auth.Register)
		v1.POST("/auth/refresh", loginLimit, h.Auth.RefreshToken)

		// Public content
		v1.GET("/events", h.Event.ListPublished)
		v1.GET("/events/:id", h.Event.GetEvent)
		v1.GET("/events/calendar.ics", h.Event.CalendarFeed)
		v1.GET("/cafeteria/menu", h.Catalog.Menu)
		v1.GET("/cafeteria/products", h.Catalog.ListAvailableProducts)
		v1.GET("/pages/:slug", h.Page.GetPublishedPage)
		v1.GET("/settings/flags", h.Setting.PublicFlags)

		// Member area (token required; blocked during maintenance for
		// non-admins)
		member := v1.Group("")
		member.Use(auth, maintenance)
		{
			member.POST("/auth/logout", h.Auth.Logout)
			member.GET("/auth/me", h.Auth.Me)
			member.PUT("/auth/password", h.Auth.ChangePassword)
			member.PUT("/profile", h.User.UpdateProfile)

			canRegister := middleware.RequirePermission(permission.RegisterEvents)
			member.POST("/events/:id/register", canRegister, h.Registration.Register)
			member.DELETE("/events/:id/register", canRegister, h.Registration.Unregister)
			member.GET("/events/:id/registration", h.Registration.Status)
			member.GET("/registrations", h.Registration.ListMine)

			member.POST("/orders", middleware.RequirePermission(permission.CreateOrders), h.Order.CreateOrder)
			member.GET("/orders", h.Order.ListMyOrders)
			member.GET("/orders/:id", h.Order.GetOrder)
			member.POST("/orders/:id/cancel", h.Order.CancelOrder)
		}

		// Back office (admin role required)
		admin := v1.Group("/admin")
		admin.Use(auth, middleware.RequireAdmin())
		{
			admin.GET("/users", h.User.ListUsers)
			admin.GET("/users/:id", h.User.GetUser)
			admin.PUT("/users/:id/role", h.User.UpdateRole)
			admin.PUT("/users/:id/active", h.User.SetActive)
			admin.DELETE("/users/:id", h.User.DeleteUser)

			admin.GET("/events", h.Event.ListAll)
			admin.POST("/events", h.Event.CreateEvent)
			admin.PUT("/events/:id", h.Event.UpdateEvent)
			admin.DELETE("/events/:id", h.Event.DeleteEvent)
			admin.PUT("/events/:id/publish", h.Event.SetPublished)
			admin.POST("/events/:id/photos", h.Event.AddPhoto)
			admin.DELETE("/events/:id/photos/:photoID", h.Event.DeletePhoto)
			admin.GET("/events/:id/registrations", h.Registration.ListByEvent)
			admin.DELETE("/registrations/:id", h.Registration.Remove)

			admin.GET("/categories", h.Catalog.ListCategories)
			admin.POST("/categories", h.Catalog.CreateCategory)
			admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
			admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)

			admin.GET("/products", h.Catalog.ListProducts)
			admin.GET("/products/:id", h.Catalog.GetProduct)
			admin.POST("/products", h.Catalog.CreateProduct)
			admin.PUT("/products/:id", h.Catalog.UpdateProduct)
			admin.DELETE("/products/:id", h.Catalog.DeleteProduct)
			admin.PUT("/products/:id/stock", h.Catalog.SetStock)
			admin.POST("/products/:id/stock/adjust", h.Catalog.AdjustStock)
			admin.PUT("/products/:id/availability", h.Catalog.SetAvailability)
			admin.GET("/catalog/stats", h.Catalog.Stats)

			admin.GET("/orders", h.Order.ListOrders)
			admin.PUT("/orders/:id/status", h.Order.UpdateOrderStatus)
			admin.POST("/pos/orders", h.Order.CreatePOSOrder)

			admin.GET("/pages", h.Page.ListPages)
			admin.GET("/pages/:id", h.Page.GetPage)
			admin.POST("/pages", h.Page.CreatePage)
			admin.PUT("/pages/:id", h.Page.UpdatePage)
			admin.DELETE("/pages/:id", h.Page.DeletePage)

			admin.GET("/settings", h.Setting.ListSettings)
			admin.GET("/settings/:key", h.Setting.GetSetting)
			admin.PUT("/settings", h.Setting.UpdateSettings)
			admin.PUT("/settings/:key", h.Setting.UpdateSetting)

			admin.POST("/media", h.Media.Upload)
			admin.GET("/media", h.Media.ListMedia)
			admin.PUT("/media/:id/alt", h.Media.UpdateAlt)
			admin.DELETE("/media/:id", h.Media.DeleteMedia)

			admin.GET("/sumup/profile", h.SumUp.MerchantProfile)
			admin.GET("/sumup/transactions", h.SumUp.ListTransactions)
			admin.GET("/sumup/transactions/export", h.SumUp.ExportCSV)
			admin.GET("/sumup/stats", h.SumUp.PeriodStats)
			admin.GET("/sumup/stats/:range", h.SumUp.RangeStats)
			admin.GET("/sumup/payouts", h.SumUp.ListPayouts)
			admin.GET("/stats/profit", h.SumUp.ProfitStats)

			admin.GET("/export/orders", h.Export.ExportOrders)
		}
	}

	return r
}
