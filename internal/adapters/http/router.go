package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/teapot-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/teapot-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/teapot-service/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the public router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// Version is reported in X-API-Version and the health body.
	Version string

	// ServiceName names the service in traces.
	ServiceName string

	// LogRequests turns the per-request log line on or off.
	LogRequests bool

	// TeapotHandler serves the public endpoints.
	TeapotHandler *handlers.TeapotHandler
}

// SetupRouter configures the public middleware chain and routing table.
// Middleware is applied in the following order (first to last):
//  1. Request ID - generate/extract request ID
//  2. Logging - one record per request, after the response
//  3. Recovery - panics become a logged 500
//  4. Response headers - the fixed headers every response carries
//  5. OpenTelemetry - tracing and metrics (no-op unless enabled)
//  6. Request target - parse the raw target against a fixed base
//
// Routes match on path only. /health, / and /docs take any method. Methods
// gin does not register (BREW, for instance) fall through to NoRoute, which
// dispatches on the same path table.
//
// Matching uses the path as sent, without decoding: /%74eapot is not
// /teapot. Targets gin cannot match literally ("//teapot", dot segments)
// also reach NoRoute and are dispatched on the resolved target path.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = false
	engine.UseRawPath = true
	engine.UnescapePathValues = false

	engine.Use(
		middleware.RequestID(),
		middleware.Logging(cfg.Logger, cfg.LogRequests),
		middleware.Recovery(cfg.Logger),
		middleware.ResponseHeaders(cfg.Version),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.RequestTarget())

	routes := publicRoutes(cfg.TeapotHandler)
	for path, handler := range routes {
		engine.Any(path, handler)
	}

	engine.NoRoute(dispatchByPath(routes))
}

// publicRoutes is the routing table keyed by exact path.
func publicRoutes(h *handlers.TeapotHandler) map[string]gin.HandlerFunc {
	return map[string]gin.HandlerFunc{
		"/health": h.Health,
		"/":       h.Docs,
		"/docs":   h.Docs,
		"/teapot": h.Teapot,
	}
}

// dispatchByPath routes requests gin could not match by method, using the
// parsed target path. Anything else is a 404.
func dispatchByPath(routes map[string]gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler, ok := routes[middleware.TargetPath(c)]; ok {
			handler(c)
			return
		}

		handlers.NotFound(c)
	}
}

// SetupAdminRouter sets up the admin listener: probes, build info and
// Prometheus metrics under /-/. It shares no routes with the public router.
func SetupAdminRouter(engine *gin.Engine, logger *slog.Logger, admin *handlers.AdminHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	admin.RegisterRoutes(engine.Group("/-"))
}
