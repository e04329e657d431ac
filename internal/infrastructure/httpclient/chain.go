// Package httpclient provides the shared outbound HTTP client: a single
// ordered chain of named request and response stages wrapped around an
// http.RoundTripper. Every upstream consumer (identity probe, registration
// forward, market listing) goes through the same chain, so header handling
// is decided in exactly one place.
package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RequestStage transforms an outgoing request. Stages run in registration
// order; the first error aborts the call.
type RequestStage struct {
	Name  string
	Apply func(req *http.Request) error
}

// ResponseStage observes a completed response. Response stages are
// independent of each other, so they also run in registration order.
type ResponseStage struct {
	Name  string
	Apply func(req *http.Request, res *http.Response)
}

// TokenSupplier returns the latest persisted bearer token, or "" when
// logged out.
type TokenSupplier func(ctx context.Context) string

// Transport is the chained http.RoundTripper.
type Transport struct {
	base      http.RoundTripper
	requests  []RequestStage
	responses []ResponseStage
}

// NewTransport wraps base (http.DefaultTransport when nil) with the given
// stages.
func NewTransport(base http.RoundTripper, requests []RequestStage, responses []ResponseStage) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, requests: requests, responses: responses}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for _, stage := range t.requests {
		if err := stage.Apply(req); err != nil {
			return nil, err
		}
	}

	res, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	for _, stage := range t.responses {
		stage.Apply(req, res)
	}
	return res, nil
}

// AttachCredential injects the Authorization header from the latest
// persisted token when the request does not already carry one. Reading
// storage per call instead of trusting in-memory state means the freshest
// persisted token always wins, even if the two have drifted.
func AttachCredential(supply TokenSupplier) RequestStage {
	return RequestStage{
		Name: "attach-header",
		Apply: func(req *http.Request) error {
			if req.Header.Get("Authorization") != "" {
				return nil
			}
			if tok := supply(req.Context()); tok != "" {
				req.Header.Set("Authorization", FormatAuthHeader(tok))
			}
			return nil
		},
	}
}

// NormalizeBearer rewrites any existing Authorization value into canonical
// Bearer form: one space after the scheme, no stray whitespace.
func NormalizeBearer() RequestStage {
	return RequestStage{
		Name: "normalize-header",
		Apply: func(req *http.Request) error {
			if v := req.Header.Get("Authorization"); v != "" {
				req.Header.Set("Authorization", FormatAuthHeader(v))
			}
			return nil
		},
	}
}

// LogRequests emits one debug record per outgoing call.
func LogRequests(log zerolog.Logger) RequestStage {
	return RequestStage{
		Name: "log",
		Apply: func(req *http.Request) error {
			log.Debug().
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Bool("has_auth", req.Header.Get("Authorization") != "").
				Msg("outgoing request")
			return nil
		},
	}
}

// LogOutcome logs the response status. A 401 is logged as a warning only;
// forcing a logout or redirect belongs to the navigation guard on the next
// route transition, not to this layer.
func LogOutcome(log zerolog.Logger) ResponseStage {
	return ResponseStage{
		Name: "log",
		Apply: func(req *http.Request, res *http.Response) {
			evt := log.Debug()
			if res.StatusCode == http.StatusUnauthorized {
				evt = log.Warn()
			}
			evt.
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Int("status", res.StatusCode).
				Msg("upstream response")
		},
	}
}

// New builds the shared client with the default stage order:
// attach-header, normalize-header, log.
func New(supply TokenSupplier, timeout time.Duration, log zerolog.Logger) *http.Client {
	transport := NewTransport(nil,
		[]RequestStage{
			AttachCredential(supply),
			NormalizeBearer(),
			LogRequests(log),
		},
		[]ResponseStage{
			LogOutcome(log),
		},
	)
	return &http.Client{Transport: transport, Timeout: timeout}
}
