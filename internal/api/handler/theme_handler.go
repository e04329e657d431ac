package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ThemeSetter persists theme preference changes.
type ThemeSetter interface {
	SetColor(ctx context.Context, name string) error
	SetDarkMode(ctx context.Context, dark bool) error
}

// ThemeHandler updates the persisted visual theme.
type ThemeHandler struct {
	themes ThemeSetter
}

func NewThemeHandler(themes ThemeSetter) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

type themeRequest struct {
	Color    *string `json:"color,omitempty"`
	DarkMode *bool   `json:"dark_mode,omitempty"`
}

// Update applies whichever fields the request carries.
//
// @Summary      Update theme preferences
// @Tags         theme
// @Accept       json
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /api/theme [put]
func (h *ThemeHandler) Update(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	ctx := c.Request().Context()
	if req.Color != nil {
		if err := h.themes.SetColor(ctx, *req.Color); err != nil {
			return err
		}
	}
	if req.DarkMode != nil {
		if err := h.themes.SetDarkMode(ctx, *req.DarkMode); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}
