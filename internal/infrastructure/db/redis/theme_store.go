package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

const (
	keyThemeColor = "themeColor"
	keyDarkMode   = "darkMode"
)

// ThemeStore persists the visual theme under the marketplace's storage keys.
type ThemeStore struct {
	client *redis.Client
}

func NewThemeStore(client *redis.Client) *ThemeStore {
	return &ThemeStore{client: client}
}

// Load returns the persisted theme, falling back to the defaults for
// missing or unrecognised values.
func (s *ThemeStore) Load(ctx context.Context) (domain.Theme, error) {
	theme := domain.DefaultTheme()

	vals, err := s.client.MGet(ctx, keyThemeColor, keyDarkMode).Result()
	if err != nil {
		return theme, fmt.Errorf("load theme: %w", err)
	}

	if color, _ := vals[0].(string); domain.ValidThemeColor(color) {
		theme.Color = color
	}
	if dark, _ := vals[1].(string); dark != "" {
		theme.DarkMode = dark == "true"
	}
	return theme, nil
}

func (s *ThemeStore) Save(ctx context.Context, theme domain.Theme) error {
	if err := s.client.MSet(ctx,
		keyThemeColor, theme.Color,
		keyDarkMode, strconv.FormatBool(theme.DarkMode),
	).Err(); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
