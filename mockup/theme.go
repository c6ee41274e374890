package mockup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme styles the browser chrome drawn around the capture. Zero values
// fall back to a light macOS-like default.
type Theme struct {
	BarBackground     string  `yaml:"bar_background"`
	BarHeight         int     `yaml:"bar_height"`
	DotClose          string  `yaml:"dot_close"`
	DotMinimize       string  `yaml:"dot_minimize"`
	DotZoom           string  `yaml:"dot_zoom"`
	BorderColor       string  `yaml:"border_color"`
	CornerRadius      int     `yaml:"corner_radius"`
	FontFamily        string  `yaml:"font_family"`
	AddressBackground string  `yaml:"address_background"`
	AddressColor      string  `yaml:"address_color"`
	FocusColor        string `yaml:"focus_color"`
	// DimOpacity is a pointer so an explicit 0 (no dimming around the
	// focus ring) survives defaulting; only absent or negative values
	// collapse to the default.
	DimOpacity *float64 `yaml:"dim_opacity"`
}

// DefaultTheme returns the stock chrome styling.
func DefaultTheme() Theme {
	t := Theme{}
	t.applyDefaults()
	return t
}

func (t *Theme) applyDefaults() {
	if t.BarBackground == "" {
		t.BarBackground = "#e8e8e8"
	}
	if t.BarHeight <= 0 {
		t.BarHeight = 36
	}
	if t.DotClose == "" {
		t.DotClose = "#ff5f57"
	}
	if t.DotMinimize == "" {
		t.DotMinimize = "#febc2e"
	}
	if t.DotZoom == "" {
		t.DotZoom = "#28c840"
	}
	if t.BorderColor == "" {
		t.BorderColor = "#c9c9c9"
	}
	if t.CornerRadius <= 0 {
		t.CornerRadius = 8
	}
	if t.FontFamily == "" {
		t.FontFamily = "-apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif"
	}
	if t.AddressBackground == "" {
		t.AddressBackground = "#ffffff"
	}
	if t.AddressColor == "" {
		t.AddressColor = "#333333"
	}
	if t.FocusColor == "" {
		t.FocusColor = "#2563eb"
	}
	if t.DimOpacity == nil || *t.DimOpacity < 0 {
		v := 0.35
		t.DimOpacity = &v
	}
}

// LoadTheme reads a YAML theme file and fills unset fields with defaults.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("mockup: read theme: %w", err)
	}

	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("mockup: parse theme: %w", err)
	}
	t.applyDefaults()
	return t, nil
}
