package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/dinedesk/restaurant-system/internal/api/handler"
	"github.com/dinedesk/restaurant-system/internal/api/middleware"
	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/http/handlers"
)

// Dependencies are the components the router wires into handlers.
type Dependencies struct {
	Sessions  ports.SessionService
	Identity  ports.IdentityService
	Catalog   ports.CatalogService
	Cart      ports.CartService
	Orders    ports.OrderService
	Dashboard ports.DashboardService
	Stream    handler.OrderStream
	// Health lists the dependencies pinged by the readiness probe.
	Health map[string]handlers.Pinger
	// Registerer receives the HTTP request metrics; nil means the default registry.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "Idempotency-Key"},
	}))
	e.Use(requestLogger(deps.Log))
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "restaurant",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational routes (no session required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	authHandler := handler.NewAuthHandler(deps.Identity)
	menuHandler := handler.NewMenuHandler(deps.Catalog)
	cartHandler := handler.NewCartHandler(deps.Cart, deps.Catalog)
	orderHandler := handler.NewOrderHandler(deps.Orders, deps.Stream)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)

	v1 := e.Group("/v1")
	v1.POST("/sessions", sessionHandler.Create)

	s := v1.Group("", middleware.Session(deps.Sessions, deps.Identity))
	perm := middleware.RequirePermission

	auth := s.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	menu := s.Group("/menu")
	menu.GET("", menuHandler.List)
	menu.GET("/categories", menuHandler.Categories)
	menu.GET("/:id", menuHandler.Get)
	menu.POST("", menuHandler.Create, perm(domain.ActionCreate, domain.ResourceMenuItem))
	menu.PATCH("/:id", menuHandler.Update, perm(domain.ActionUpdate, domain.ResourceMenuItem))
	menu.DELETE("/:id", menuHandler.Delete, perm(domain.ActionDelete, domain.ResourceMenuItem))

	cart := s.Group("/cart")
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:id", cartHandler.UpdateItem)
	cart.DELETE("/items/:id", cartHandler.RemoveItem)

	orders := s.Group("/orders")
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/stream", orderHandler.Stream, perm(domain.ActionRead, domain.ResourceOrder))
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/advance", orderHandler.Advance, perm(domain.ActionUpdate, domain.ResourceOrder))
	orders.POST("/:id/cancel", orderHandler.Cancel, perm(domain.ActionUpdate, domain.ResourceOrder))

	s.GET("/dashboard", dashboardHandler.Stats, perm(domain.ActionRead, domain.ResourceOrder))
	s.GET("/reports/financial", dashboardHandler.FinancialReport, perm(domain.ActionRead, domain.ResourceFinancialData))

	return e
}

// requestLogger logs one line per request with zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
