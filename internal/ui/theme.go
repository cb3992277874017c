package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// darkTheme forces the dark variant and optionally swaps in a font that can
// render the localized labels.
type darkTheme struct {
	font fyne.Resource
}

var _ fyne.Theme = (*darkTheme)(nil)

// NewTheme returns the application theme. fontPath may be empty; a font that
// cannot be loaded is reported and the default font is kept.
func NewTheme(fontPath string) (fyne.Theme, error) {
	t := &darkTheme{}
	if fontPath == "" {
		return t, nil
	}
	res, err := fyne.LoadResourceFromPath(fontPath)
	if err != nil {
		return t, fmt.Errorf("load font %s: %w", fontPath, err)
	}
	t.font = res
	return t, nil
}

func (d *darkTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	if d.font != nil && !style.Monospace && !style.Symbol {
		return d.font
	}
	return theme.DefaultTheme().Font(style)
}

func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }
