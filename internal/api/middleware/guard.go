package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wenturc/prompt-market/internal/api/metrics"
	"github.com/wenturc/prompt-market/internal/core/ports"
)

// RouteMeta carries the per-route access flags. Static, consulted and never
// mutated by the guard.
type RouteMeta struct {
	RequiresAuth  bool
	RequiresAdmin bool
}

// Guard gates route entry on the current session's derived flags. Admin is
// checked first: an admin-only route sends non-admins home, an auth-only
// route sends guests to login, everything else proceeds.
func Guard(meta RouteMeta, sessions ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessions.Snapshot()

			if meta.RequiresAdmin && !sess.IsAdmin() {
				metrics.GuardRedirectsTotal.WithLabelValues("admin").Inc()
				return c.Redirect(http.StatusFound, "/")
			}
			if meta.RequiresAuth && !sess.IsLoggedIn() {
				metrics.GuardRedirectsTotal.WithLabelValues("auth").Inc()
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}
