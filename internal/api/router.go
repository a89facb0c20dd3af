package api

import (
	"net/http"
	"slices"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/talenthub/talenthub-api/docs"
	"github.com/talenthub/talenthub-api/internal/api/handler"
	"github.com/talenthub/talenthub-api/internal/api/middleware"
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/service"
	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
	"github.com/talenthub/talenthub-api/internal/infrastructure/repository"
)

// Dependencies is everything NewRouter needs. Store is shared by every
// repository.
type Dependencies struct {
	Store  store.Client
	Logger zerolog.Logger

	JWTSecret      string
	AuthEnabled    bool
	AllowedOrigins []string
	StaticDir      string
	MaxPageLimit   int

	// Readiness lists the dependencies pinged by /health/ready. When nil
	// only the store is checked.
	Readiness map[string]handler.Pinger
}

// resourceRoutes is the handler surface mounted for each resource.
type resourceRoutes interface {
	Create(c echo.Context) error
	GetAll(c echo.Context) error
	GetByID(c echo.Context) error
	GetPaginated(c echo.Context) error
	UpdateByID(c echo.Context) error
	DeleteByID(c echo.Context) error
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// Per-router registry so several routers can live in one process (tests).
	httpMetrics := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "talenthub",
		Subsystem:  "http",
		Registerer: httpMetrics,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return slices.Contains(deps.AllowedOrigins, origin), nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("1M"))

	// --- Operational endpoints (no auth required) ---
	readiness := deps.Readiness
	if readiness == nil {
		readiness = map[string]handler.Pinger{"store": deps.Store}
	}
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{httpMetrics, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if deps.StaticDir != "" {
		e.Static("/", deps.StaticDir)
	}

	// --- Resources ---
	api := e.Group("/api")
	if deps.AuthEnabled {
		api.Use(middleware.Auth(deps.JWTSecret))
	}

	opts := handler.Options{MaxPageLimit: deps.MaxPageLimit, Logger: deps.Logger}

	users := repository.NewUserRepository(deps.Store, deps.Logger)
	jobs := repository.NewJobRepository(deps.Store, deps.Logger)
	projects := repository.NewProjectRepository(deps.Store, deps.Logger)

	mount(api.Group("/users"), handler.NewUserHandler(service.NewResourceService[domain.User](users, deps.Logger), opts))
	mount(api.Group("/jobs"), handler.NewJobHandler(service.NewResourceService[domain.Job](jobs, deps.Logger), opts))
	mount(api.Group("/projects"), handler.NewProjectHandler(service.NewResourceService[domain.Project](projects, deps.Logger), opts))

	return e
}

// mount registers the six CRUD routes of one resource. The paginated route
// is declared before /:id; echo also prefers static segments over params.
func mount(g *echo.Group, h resourceRoutes) {
	g.POST("", h.Create)
	g.GET("", h.GetAll)
	g.GET("/page/:page/limit/:limit", h.GetPaginated)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.UpdateByID)
	g.DELETE("/:id", h.DeleteByID)
}
