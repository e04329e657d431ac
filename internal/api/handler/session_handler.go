package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wenturc/prompt-market/internal/core/domain"
	"github.com/wenturc/prompt-market/internal/core/ports"
)

// SessionHandler exposes the session lifecycle over /api/session and the
// registration forward over /api/register.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}

// Current returns a snapshot of the gateway session.
//
// @Summary      Session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	sess := h.sessions.Snapshot()
	role := sess.Role
	if role == "" {
		role = domain.RoleUser
	}
	return c.JSON(http.StatusOK, sessionResponse{
		LoggedIn: sess.IsLoggedIn(),
		Username: sess.Username,
		UserID:   sess.UserID,
		Role:     role,
		IsAdmin:  sess.IsAdmin(),
	})
}

// Login installs a new session from credentials obtained upstream.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Credentials  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if creds.Username == "" || creds.AccessToken == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and access_token are required"})
	}

	if err := h.sessions.Login(c.Request().Context(), creds); err != nil {
		return err
	}
	return h.Current(c)
}

// Logout clears the session and the persisted credential record.
//
// @Summary      Logout
// @Tags         session
// @Success      204
// @Router       /api/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Register validates the payload locally and forwards it upstream.
//
// @Summary      Register a new marketplace account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Registration details"
// @Success      201   {object}  ports.RegisterResult
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var in ports.RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	result, err := h.sessions.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}
