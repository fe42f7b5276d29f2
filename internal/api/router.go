package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/forgeline/storefront-api/internal/api/handler"
	"github.com/forgeline/storefront-api/internal/api/middleware"
	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
	"github.com/forgeline/storefront-api/internal/core/service"
	mongodb "github.com/forgeline/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/forgeline/storefront-api/internal/infrastructure/db/redis"
	"github.com/forgeline/storefront-api/internal/pkg/config"
)

// Deps bundles the process-wide resources the router wires together.
type Deps struct {
	Config *config.Config
	DB     *mongo.Database
	Redis  *redis.Client
	Audit  ports.AuthEventSink
	Log    zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered. The route
// guard fronts every navigable route; API routes carry their own session
// middleware instead.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Repositories and services ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	catalogRepo := mongodb.NewCatalogRepository(deps.DB)
	orderRepo := mongodb.NewOrderRepository(deps.DB)
	quoteRepo := mongodb.NewQuoteRepository(deps.DB)

	issuer, err := service.NewSessionIssuer(deps.Config.SessionSecret, deps.Config.SessionTTL, userRepo, deps.Log)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(userRepo, deps.Log)
	userService := service.NewUserService(userRepo, deps.Log)
	catalogService := service.NewCatalogService(catalogRepo, deps.Log)
	orderService := service.NewOrderService(orderRepo, catalogRepo, deps.Log)
	quoteService := service.NewQuoteService(quoteRepo, catalogRepo, deps.Log)
	throttle := redisdb.NewLoginThrottle(deps.Redis)

	authHandler := handler.NewAuthHandler(authService, issuer, throttle, deps.Audit, deps.Config.SessionTTL, deps.Config.IsProduction())
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	pageHandler := handler.NewPageHandler(catalogService, orderService, quoteService, userService)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(middleware.Guard(issuer))

	// --- Operational endpoints (guard-exempt) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.DB, deps.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Navigable routes (behind the guard) ---
	e.GET("/", pageHandler.Home)
	e.GET("/products", pageHandler.Products)
	e.GET("/about", pageHandler.About)
	e.GET("/contact", pageHandler.Contact)
	e.GET("/quotation", pageHandler.Quotation)
	e.GET("/login", pageHandler.Login)
	e.GET("/change-password", pageHandler.ChangePassword)
	e.GET("/account", pageHandler.Account)
	e.GET("/account/orders", pageHandler.AccountOrders)
	e.GET("/account/quotes", pageHandler.AccountQuotes)
	e.GET("/admin", pageHandler.AdminDashboard)
	e.GET("/admin/users", pageHandler.AdminUsers)
	e.GET("/admin/orders", pageHandler.AdminOrders)
	e.GET("/admin/quotes", pageHandler.AdminQuotes)
	e.GET("/studio", pageHandler.Studio)

	// --- Auth API ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, middleware.OptionalSession(issuer))
	auth.GET("/session", authHandler.Session, middleware.RequireSession(issuer))
	auth.POST("/refresh", authHandler.Refresh)
	// Change-password stays reachable with a temporary session; it is the
	// only way out of the forced-change state.
	auth.POST("/change-password", authHandler.ChangePassword, middleware.RequireSession(issuer))

	// --- Customer API ---
	e.POST("/api/quotes", quoteHandler.Submit, middleware.OptionalSession(issuer))

	customer := e.Group("/api", middleware.RequireSession(issuer), middleware.RejectTemporary())
	customer.POST("/orders", orderHandler.Create)
	customer.GET("/orders", orderHandler.ListOwn)
	customer.GET("/orders/:id", orderHandler.Get)
	customer.GET("/quotes", quoteHandler.ListOwn)

	// --- Admin API ---
	admin := e.Group("/api/admin", middleware.RequireSession(issuer), middleware.RejectTemporary(), middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.POST("/users/:id/reset-password", userHandler.ResetPassword)

	admin.GET("/orders", orderHandler.ListAll)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.GET("/quotes", quoteHandler.ListAll)
	admin.PATCH("/quotes/:id/status", quoteHandler.UpdateStatus)

	admin.GET("/catalog/products", catalogHandler.ListProducts)
	admin.POST("/catalog/products", catalogHandler.CreateProduct)
	admin.PUT("/catalog/products/:id", catalogHandler.UpdateProduct)
	admin.DELETE("/catalog/products/:id", catalogHandler.DeleteProduct)
	admin.GET("/catalog/services", catalogHandler.ListServices)
	admin.POST("/catalog/services", catalogHandler.CreateService)
	admin.DELETE("/catalog/services/:id", catalogHandler.DeleteService)
	admin.GET("/catalog/staff", catalogHandler.ListStaff)
	admin.POST("/catalog/staff", catalogHandler.CreateStaff)
	admin.DELETE("/catalog/staff/:id", catalogHandler.DeleteStaff)

	return e, nil
}
