package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/marketplace-system/docs"
	"github.com/99minutos/marketplace-system/internal/api/handler"
	"github.com/99minutos/marketplace-system/internal/api/middleware"
	"github.com/99minutos/marketplace-system/internal/core/policy"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "marketplace"

// Deps carries everything the HTTP layer needs from the composition root.
type Deps struct {
	Logger   zerolog.Logger
	Resolver ports.IdentityResolver
	Auth     ports.AuthService
	Accounts ports.AccountService
	Products ports.ProductService
	Probes   map[string]handlers.Probe

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(prometheusMiddleware(d.Registry))

	// --- Operational endpoints (no auth) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Probes).Readiness)
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(d.Auth)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	productHandler := handler.NewProductHandler(d.Products)

	// Every API route resolves the caller; anonymous callers pass through
	// and are judged by the policy engine.
	api := e.Group("", middleware.Authenticate(d.Resolver))

	// --- Auth ---
	api.POST("/login", authHandler.Login)

	// --- Accounts ---
	api.POST("/accounts", accountHandler.Register)
	api.GET("/accounts", accountHandler.List)
	api.GET("/accounts/newest/:num", accountHandler.Newest)
	api.PATCH("/accounts/:id", accountHandler.Update,
		middleware.Authorize(policy.KindAccount, policy.ActionUpdate))
	api.PATCH("/accounts/:id/management", accountHandler.Manage,
		middleware.Authorize(policy.KindAccount, policy.ActionManage))

	// --- Products ---
	api.POST("/products", productHandler.Create,
		middleware.Authorize(policy.KindProduct, policy.ActionCreate))
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.PATCH("/products/:id", productHandler.Update,
		middleware.Authorize(policy.KindProduct, policy.ActionUpdate))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware(metricsSubsystem)
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
