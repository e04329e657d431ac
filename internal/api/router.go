package api

import (
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wenturc/prompt-market/internal/api/handler"
	"github.com/wenturc/prompt-market/internal/api/middleware"
	"github.com/wenturc/prompt-market/internal/core/ports"
	"github.com/wenturc/prompt-market/internal/core/service"
	"github.com/wenturc/prompt-market/internal/infrastructure/config"
	"github.com/wenturc/prompt-market/internal/infrastructure/proxy"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions  ports.SessionService
	Catalog   ports.CatalogService
	Themes    *service.ThemeService
	SyncQueue handler.SyncEnqueuer
	Endpoints config.EndpointSet
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// spaRoutes is the route table mirrored from the SPA, with the access flags
// each route carries.
var spaRoutes = []struct {
	path string
	meta middleware.RouteMeta
}{
	{path: "/"},
	{path: "/login"},
	{path: "/register"},
	{path: "/prompts"},
	{path: "/prompts/:id"},
	{path: "/create", meta: middleware.RouteMeta{RequiresAuth: true}},
	{path: "/admin", meta: middleware.RouteMeta{RequiresAuth: true, RequiresAdmin: true}},
	{path: "/competition"},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("promptmarket"))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/api/test", healthHandler.Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis).Readiness)

	// --- Session lifecycle + registration forward ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	e.GET("/api/session", sessionHandler.Current)
	e.POST("/api/session", sessionHandler.Login)
	e.DELETE("/api/session", sessionHandler.Logout)
	e.POST("/api/register", sessionHandler.Register)

	// --- Theme + catalog ---
	e.PUT("/api/theme", handler.NewThemeHandler(deps.Themes).Update)

	promptsHandler := handler.NewPromptsHandler(deps.Catalog, deps.SyncQueue, deps.Sessions)
	e.GET("/api/prompts", promptsHandler.List)
	e.POST("/api/sync", promptsHandler.Sync,
		middleware.Guard(middleware.RouteMeta{RequiresAuth: true, RequiresAdmin: true}, deps.Sessions))

	// --- Federated market proxies ---
	registerMarketProxy(e, "/api/external", deps.Endpoints.MarketA, deps.Log)
	registerMarketProxy(e, "/api/vmoranv", deps.Endpoints.MarketB, deps.Log)

	// --- SPA shell routes ---
	shell := handler.NewShellHandler()
	themeInit := middleware.ThemeInit(deps.Themes)
	for _, r := range spaRoutes {
		e.GET(r.path, shell.Shell, themeInit, middleware.Guard(r.meta, deps.Sessions))
	}
	// Catch-all falls back to the home shell.
	e.GET("/*", shell.Shell, themeInit)

	return e
}

func registerMarketProxy(e *echo.Echo, localPrefix, target string, log zerolog.Logger) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		log.Error().Err(err).Str("target", target).Str("prefix", localPrefix).Msg("market proxy disabled, bad target URL")
		return
	}
	e.Any(localPrefix+"/*", proxy.Handler(u, localPrefix, log))
}
