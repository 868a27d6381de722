package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme modes stored in the app config.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// WardViewTheme wraps the default Fyne theme with compact sizing and an
// optional forced light or dark variant.
type WardViewTheme struct {
	base fyne.Theme
	mode string
}

// NewWardViewTheme creates a theme in the given mode. Unknown modes follow
// the system variant.
func NewWardViewTheme(mode string) *WardViewTheme {
	t := &WardViewTheme{base: theme.DefaultTheme()}
	t.SetMode(mode)
	return t
}

// SetMode switches between ThemeSystem, ThemeLight and ThemeDark.
func (t *WardViewTheme) SetMode(mode string) {
	switch mode {
	case ThemeLight, ThemeDark:
		t.mode = mode
	default:
		t.mode = ThemeSystem
	}
}

// Mode returns the current mode.
func (t *WardViewTheme) Mode() string { return t.mode }

// Variant resolves the mode against the system variant.
func (t *WardViewTheme) Variant(system fyne.ThemeVariant) fyne.ThemeVariant {
	switch t.mode {
	case ThemeLight:
		return theme.VariantLight
	case ThemeDark:
		return theme.VariantDark
	}
	return system
}

func (t *WardViewTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.Variant(variant))
}

func (t *WardViewTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *WardViewTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizes for the dense dashboard panels.
func (t *WardViewTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
