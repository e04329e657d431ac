package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

func render(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("%w: username must be at least 3 characters", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrUsernameTaken, http.StatusConflict},
		{domain.ErrAuthExpired, http.StatusUnauthorized},
		{domain.ErrNetwork, http.StatusBadGateway},
		{fmt.Errorf("%w: registration disabled", domain.ErrServer), http.StatusBadGateway},
		{domain.ErrPromptNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := render(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_ValidationMessageVerbatim(t *testing.T) {
	rec := render(t, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation))

	if !strings.Contains(rec.Body.String(), "password must be at least 6 characters") {
		t.Fatalf("validation message lost: %s", rec.Body.String())
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	rec := render(t, echo.NewHTTPError(http.StatusNotFound, "route not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedErrorHidesDetail(t *testing.T) {
	rec := render(t, fmt.Errorf("mongo: topology closed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "topology") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}
