package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

// ThemeApplier decides when the persisted theme must be (re)applied and
// loads it.
type ThemeApplier interface {
	ShouldApply(directAccess bool) bool
	Apply(ctx context.Context) domain.Theme
}

// ThemeInit stamps the persisted theme onto responses for direct accesses
// (deep links, self-transitions) and at least once per process, so the
// shell never paints unstyled. Session-independent; cosmetic only.
func ThemeInit(themes ThemeApplier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if themes.ShouldApply(isDirectAccess(c.Request())) {
				theme := themes.Apply(c.Request().Context())
				h := c.Response().Header()
				h.Set("X-Theme-Color", theme.Color)
				h.Set("X-Dark-Mode", strconv.FormatBool(theme.DarkMode))
			}
			return next(c)
		}
	}
}

// isDirectAccess classifies a navigation with no originating route, or a
// self-transition, as direct.
func isDirectAccess(req *http.Request) bool {
	ref := req.Referer()
	if ref == "" {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return true
	}
	return u.Path == req.URL.Path
}
