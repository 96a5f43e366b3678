package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dimermichel/quickbite/internal/api/docs"
	"github.com/dimermichel/quickbite/internal/api/handler"
	"github.com/dimermichel/quickbite/internal/api/middleware"
	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the composition root.
type Dependencies struct {
	Tokens      ports.TokenCodec
	Auth        ports.AuthService
	Users       ports.UserService
	Restaurants ports.RestaurantService
	MenuItems   ports.MenuItemService

	// Readiness lists the backing services probed by /health/ready.
	Readiness []handler.Dependency

	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "quickbite",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Security: the gate parses the token, the policy checks the route ---
	e.Use(middleware.Authenticate(deps.Tokens, deps.Logger))
	e.Use(middleware.Authorize(middleware.DefaultPolicy()))

	// --- Operational routes (public in the policy) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness...)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	api := e.Group("/api")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/login", authHandler.Login)
	api.POST("/change-password", authHandler.ChangePassword)

	// --- User routes ---
	userHandler := handler.NewUserHandler(deps.Users)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Restaurant routes ---
	restaurantHandler := handler.NewRestaurantHandler(deps.Restaurants)
	restaurants := api.Group("/restaurants")
	restaurants.POST("", restaurantHandler.Create)
	restaurants.GET("", restaurantHandler.List)
	restaurants.GET("/by-cuisine", restaurantHandler.ByCuisine)
	restaurants.GET("/by-rating", restaurantHandler.ByRating)
	restaurants.GET("/owner/:ownerId", restaurantHandler.ByOwner)
	restaurants.GET("/:id", restaurantHandler.Get)
	restaurants.PUT("/:id", restaurantHandler.Update)
	restaurants.DELETE("/:id", restaurantHandler.Delete, adminOnly)

	// --- Menu item routes ---
	menuItemHandler := handler.NewMenuItemHandler(deps.MenuItems)
	menuItems := api.Group("/menu-items")
	menuItems.POST("", menuItemHandler.Create)
	menuItems.GET("/restaurant", menuItemHandler.ListByRestaurant)
	menuItems.GET("/restaurant/available", menuItemHandler.ListAvailable)
	menuItems.GET("/restaurant/search", menuItemHandler.Search)
	menuItems.GET("/:id", menuItemHandler.Get)
	menuItems.PUT("/:id", menuItemHandler.Update)
	menuItems.DELETE("/:id", menuItemHandler.Delete, adminOnly)

	return e
}
