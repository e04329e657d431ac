package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wenturc/prompt-market/internal/core/domain"
	"github.com/wenturc/prompt-market/internal/core/ports"
)

// ThemeService applies the persisted visual theme. The guard consults it on
// every navigation; the theme is re-applied on direct accesses and at least
// once per process so deep-link loads never paint unstyled.
type ThemeService struct {
	store ports.ThemeStore
	log   zerolog.Logger

	mu          sync.Mutex
	initialized bool
}

func NewThemeService(store ports.ThemeStore, log zerolog.Logger) *ThemeService {
	return &ThemeService{store: store, log: log}
}

// ShouldApply reports whether this navigation needs the theme re-applied.
func (s *ThemeService) ShouldApply(directAccess bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return directAccess || !s.initialized
}

// Apply loads the persisted theme and marks the one-time flag. Load
// failures fall back to the defaults rather than blocking navigation.
func (s *ThemeService) Apply(ctx context.Context) domain.Theme {
	theme, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("theme load failed, using defaults")
		theme = domain.DefaultTheme()
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	return theme
}

// SetColor persists a new preset colour.
func (s *ThemeService) SetColor(ctx context.Context, name string) error {
	if !domain.ValidThemeColor(name) {
		return fmt.Errorf("%w: unknown theme color %q", domain.ErrValidation, name)
	}
	theme, err := s.store.Load(ctx)
	if err != nil {
		theme = domain.DefaultTheme()
	}
	theme.Color = name
	return s.store.Save(ctx, theme)
}

// SetDarkMode persists the dark-mode flag.
func (s *ThemeService) SetDarkMode(ctx context.Context, dark bool) error {
	theme, err := s.store.Load(ctx)
	if err != nil {
		theme = domain.DefaultTheme()
	}
	theme.DarkMode = dark
	return s.store.Save(ctx, theme)
}
