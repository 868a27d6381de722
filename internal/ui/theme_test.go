package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestWardViewTheme_Variant(t *testing.T) {
	th := NewWardViewTheme(ThemeDark)
	assert.Equal(t, theme.VariantDark, th.Variant(theme.VariantLight))

	th.SetMode(ThemeLight)
	assert.Equal(t, theme.VariantLight, th.Variant(theme.VariantDark))

	th.SetMode("sepia")
	assert.Equal(t, ThemeSystem, th.Mode())
	assert.Equal(t, theme.VariantDark, th.Variant(theme.VariantDark))
}

func TestWardViewTheme_CompactSizes(t *testing.T) {
	th := NewWardViewTheme(ThemeSystem)
	assert.Equal(t, float32(12), th.Size(theme.SizeNameText))
	assert.Equal(t, float32(3), th.Size(theme.SizeNamePadding))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}

func TestWardViewTheme_ColorFollowsMode(t *testing.T) {
	th := NewWardViewTheme(ThemeDark)
	want := theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark)
	assert.Equal(t, want, th.Color(theme.ColorNameBackground, theme.VariantLight))
}
