package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

type stubSessions struct {
	session domain.Session
}

func (s *stubSessions) Snapshot() domain.Session { return s.session }

func runGuard(t *testing.T, meta RouteMeta, sess domain.Session) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Guard(meta, &stubSessions{session: sess})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard handler returned error: %v", err)
	}
	return rec
}

func TestGuard_AdminRouteRejectsPlainUser(t *testing.T) {
	rec := runGuard(t, RouteMeta{RequiresAuth: true, RequiresAdmin: true},
		domain.Session{Token: "tok", Username: "bob", Role: domain.RoleUser})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}
}

func TestGuard_AdminRouteAllowsAdmin(t *testing.T) {
	rec := runGuard(t, RouteMeta{RequiresAuth: true, RequiresAdmin: true},
		domain.Session{Token: "tok", Username: "alice", Role: domain.RoleAdmin})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin to pass, got %d", rec.Code)
	}
}

func TestGuard_AuthRouteRedirectsGuestToLogin(t *testing.T) {
	rec := runGuard(t, RouteMeta{RequiresAuth: true}, domain.Session{})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
}

func TestGuard_AdminCheckWinsOverAuthCheck(t *testing.T) {
	// A guest hitting an admin route goes home, not to login.
	rec := runGuard(t, RouteMeta{RequiresAuth: true, RequiresAdmin: true}, domain.Session{})

	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected admin redirect to win, got %q", loc)
	}
}

func TestGuard_PublicRoutePasses(t *testing.T) {
	rec := runGuard(t, RouteMeta{}, domain.Session{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public route to pass for guests, got %d", rec.Code)
	}
}

type stubThemes struct {
	applied    int
	wantDirect []bool
	theme      domain.Theme
}

func (s *stubThemes) ShouldApply(direct bool) bool {
	s.wantDirect = append(s.wantDirect, direct)
	return direct || s.applied == 0
}

func (s *stubThemes) Apply(context.Context) domain.Theme {
	s.applied++
	return s.theme
}

func runThemeInit(t *testing.T, themes *stubThemes, target, referer string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ThemeInit(themes)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("theme middleware returned error: %v", err)
	}
	return rec
}

func TestThemeInit_DirectAccessStampsHeaders(t *testing.T) {
	themes := &stubThemes{theme: domain.Theme{Color: "purple", DarkMode: true}}

	rec := runThemeInit(t, themes, "/prompts", "")

	if got := rec.Header().Get("X-Theme-Color"); got != "purple" {
		t.Fatalf("expected theme color header, got %q", got)
	}
	if got := rec.Header().Get("X-Dark-Mode"); got != "true" {
		t.Fatalf("expected dark mode header, got %q", got)
	}
	if len(themes.wantDirect) != 1 || !themes.wantDirect[0] {
		t.Fatalf("no-referer navigation must classify as direct: %v", themes.wantDirect)
	}
}

func TestThemeInit_SelfTransitionIsDirect(t *testing.T) {
	themes := &stubThemes{theme: domain.DefaultTheme()}

	runThemeInit(t, themes, "/prompts", "https://prompt.wenturc.com/prompts")

	if len(themes.wantDirect) != 1 || !themes.wantDirect[0] {
		t.Fatalf("self-transition must classify as direct: %v", themes.wantDirect)
	}
}

func TestThemeInit_CrossRouteIsNotDirect(t *testing.T) {
	themes := &stubThemes{theme: domain.DefaultTheme(), applied: 1}

	rec := runThemeInit(t, themes, "/prompts", "https://prompt.wenturc.com/login")

	if len(themes.wantDirect) != 1 || themes.wantDirect[0] {
		t.Fatalf("cross-route navigation must not classify as direct: %v", themes.wantDirect)
	}
	if got := rec.Header().Get("X-Theme-Color"); got != "" {
		t.Fatalf("already-initialized cross-route navigation should not restamp, got %q", got)
	}
}
