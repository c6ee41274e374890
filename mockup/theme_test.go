package mockup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTheme(t *testing.T) {
	th := DefaultTheme()
	if th.DotClose != "#ff5f57" || th.DotMinimize != "#febc2e" || th.DotZoom != "#28c840" {
		t.Errorf("unexpected traffic-light colors: %+v", th)
	}
	if th.BarHeight <= 0 || th.CornerRadius <= 0 {
		t.Errorf("defaults not applied: %+v", th)
	}
	if th.DimOpacity == nil || *th.DimOpacity != 0.35 {
		t.Errorf("dim opacity default not applied: %+v", th.DimOpacity)
	}
}

func TestThemeKeepsExplicitZeroDim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("dim_opacity: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadTheme(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.DimOpacity == nil || *th.DimOpacity != 0 {
		t.Errorf("explicit zero dim collapsed to default: %+v", th.DimOpacity)
	}

	// Negative is invalid and falls back like an absent value.
	neg := -1.0
	invalid := Theme{DimOpacity: &neg}
	invalid.applyDefaults()
	if *invalid.DimOpacity != 0.35 {
		t.Errorf("negative dim not defaulted: %v", *invalid.DimOpacity)
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	data := []byte("bar_background: \"#222222\"\nfocus_color: \"#00ff00\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadTheme(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.BarBackground != "#222222" || th.FocusColor != "#00ff00" {
		t.Errorf("yaml values not applied: %+v", th)
	}
	// Unset fields still get defaults.
	if th.DotClose != "#ff5f57" || th.BarHeight != 36 {
		t.Errorf("defaults not filled: %+v", th)
	}
}

func TestLoadThemeErrors(t *testing.T) {
	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTheme(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
