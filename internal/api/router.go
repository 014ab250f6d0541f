package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/elegance/jewelry-catalog/docs"
	"github.com/elegance/jewelry-catalog/internal/api/handler"
	"github.com/elegance/jewelry-catalog/internal/api/middleware"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

// Services bundles the use cases the router exposes.
type Services struct {
	Auth        ports.AuthService
	Tokens      ports.TokenVerifier
	Revocations middleware.RevocationChecker // optional
	Admins      ports.AdminService
	Products    ports.ProductService
	Store       ports.StoreService
	Images      ports.ImageStore
	// Dependencies are checked by the readiness probe.
	Dependencies []handler.Dependency
}

// Options tunes the HTTP surface.
type Options struct {
	// MetricsEnabled mounts echoprometheus and /metrics. It registers collectors
	// with the default registry, so it can be enabled once per process.
	MetricsEnabled bool
	UploadDir      string
	MaxUploadBytes int64
	CORSOrigins    []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	if len(opts.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	if opts.MetricsEnabled {
		e.Use(echoprometheus.NewMiddleware("storefront"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if opts.UploadDir != "" {
		e.Static("/uploads", opts.UploadDir)
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	adminHandler := handler.NewAdminHandler(svc.Admins)
	productHandler := handler.NewProductHandler(svc.Products)
	uploadHandler := handler.NewUploadHandler(svc.Images)
	storeHandler := handler.NewStoreHandler(svc.Store)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(svc.Dependencies...)

	authenticated := middleware.Auth(svc.Tokens, svc.Revocations)
	anyAdmin := middleware.RequireAccess(domain.AccessAdmin)
	mainOnly := middleware.RequireAccess(domain.AccessMain)

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	api.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Admin accounts ---
	api.POST("/admin/register", authHandler.Register)
	api.POST("/admin/login", authHandler.Login)

	admins := api.Group("/admin", authenticated, mainOnly)
	admins.GET("/pending", adminHandler.ListPending)
	admins.GET("/all", adminHandler.ListAll)
	admins.PUT("/approve/:id", adminHandler.Approve)
	admins.DELETE("/reject/:id", adminHandler.Reject)
	admins.DELETE("/:id", adminHandler.Delete)

	// --- Catalog ---
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/filters", productHandler.Filters)
	api.POST("/products", productHandler.Create, authenticated, anyAdmin)
	api.PUT("/products/:id", productHandler.Update, authenticated, anyAdmin)
	api.DELETE("/products/:id", productHandler.Delete, authenticated, anyAdmin)

	uploadLimit := opts.MaxUploadBytes
	if uploadLimit <= 0 {
		uploadLimit = 5 << 20
	}
	api.POST("/upload", uploadHandler.Upload,
		authenticated, anyAdmin,
		echomiddleware.BodyLimit(fmt.Sprintf("%dB", uploadLimit+multipartOverhead)),
	)

	// --- Store status ---
	api.GET("/store/status", storeHandler.Status)
	api.PUT("/store/status", storeHandler.SetStatus, authenticated, mainOnly)

	return e
}

// multipartOverhead leaves room for boundaries and part headers around the file.
const multipartOverhead = 64 << 10

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
