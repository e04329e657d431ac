// Package proxy rewrites the local federation paths to the external
// markets, the same edge rewrite the SPA's dev server performed. The vendor
// prefix never reaches the remote target.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler returns an echo handler that forwards requests to target after
// stripping localPrefix from the path.
func Handler(target *url.URL, localPrefix string, log zerolog.Logger) echo.HandlerFunc {
	rp := httputil.NewSingleHostReverseProxy(target)

	director := rp.Director
	rp.Director = func(req *http.Request) {
		director(req)
		rest := strings.TrimPrefix(req.URL.Path, localPrefix)
		if !strings.HasPrefix(rest, "/") {
			rest = "/" + rest
		}
		req.URL.Path = singleJoin(target.Path, rest)
		req.Host = target.Host
	}
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn().Err(err).Str("path", r.URL.Path).Str("target", target.Host).Msg("market proxy failed")
		w.WriteHeader(http.StatusBadGateway)
	}

	return func(c echo.Context) error {
		rp.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

func singleJoin(a, b string) string {
	switch {
	case strings.HasSuffix(a, "/") && strings.HasPrefix(b, "/"):
		return a + b[1:]
	case !strings.HasSuffix(a, "/") && !strings.HasPrefix(b, "/"):
		return a + "/" + b
	default:
		return a + b
	}
}
