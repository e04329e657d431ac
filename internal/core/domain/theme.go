package domain

// Theme is the persisted visual preference applied before the SPA shell
// paints. Cosmetic only; it rides along with the navigation guard because
// that is the control point shared with deep-link loads.
type Theme struct {
	Color    string
	DarkMode bool
}

// Preset theme colours understood by the SPA shell.
var themeColors = map[string]struct{}{
	"blue":   {},
	"green":  {},
	"purple": {},
	"orange": {},
	"red":    {},
	"teal":   {},
}

// DefaultTheme is used when nothing has been persisted yet.
func DefaultTheme() Theme { return Theme{Color: "blue", DarkMode: false} }

// ValidThemeColor reports whether name is one of the preset colours.
func ValidThemeColor(name string) bool {
	_, ok := themeColors[name]
	return ok
}
