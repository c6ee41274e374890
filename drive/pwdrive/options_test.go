package pwdrive

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/hazyhaar/framecap/drive"
)

func TestMarkerSelector(t *testing.T) {
	if got := markerSelector("window"); got != `[data-framecap="window"]` {
		t.Errorf("markerSelector = %q", got)
	}
}

func TestPageShotOptionsPassthrough(t *testing.T) {
	quality := 85
	opts := pageShotOptions(drive.ScreenshotOptions{
		Format:         "jpeg",
		Clip:           &drive.Rect{X: 1, Y: 2, Width: 3, Height: 4},
		FullPage:       true,
		Quality:        &quality,
		MaskColor:      "#ff00ff",
		OmitBackground: true,
		Scale:          "css",
		Style:          "body { background: red }",
		Caret:          "hide",
		Animations:     "disabled",
		Timeout:        2 * time.Second,
	}, nil)

	if *opts.Type != *playwright.ScreenshotTypeJpeg {
		t.Errorf("type = %v", opts.Type)
	}
	if opts.Clip == nil || opts.Clip.Width != 3 || opts.Clip.Height != 4 {
		t.Errorf("clip = %+v", opts.Clip)
	}
	if opts.FullPage == nil || !*opts.FullPage {
		t.Error("full page not set")
	}
	if opts.Quality == nil || *opts.Quality != 85 {
		t.Error("quality not passed")
	}
	if opts.MaskColor == nil || *opts.MaskColor != "#ff00ff" {
		t.Error("mask color not passed")
	}
	if opts.OmitBackground == nil || !*opts.OmitBackground {
		t.Error("omit background not set")
	}
	if *opts.Scale != *playwright.ScreenshotScaleCss {
		t.Error("scale not mapped")
	}
	if opts.Style == nil || *opts.Style == "" {
		t.Error("style not passed")
	}
	if *opts.Caret != *playwright.ScreenshotCaretHide {
		t.Error("caret not mapped")
	}
	if *opts.Animations != *playwright.ScreenshotAnimationsDisabled {
		t.Error("animations not mapped")
	}
	if opts.Timeout == nil || *opts.Timeout != 2000 {
		t.Errorf("timeout = %v", opts.Timeout)
	}
}

func TestPageShotOptionsDefaults(t *testing.T) {
	opts := pageShotOptions(drive.ScreenshotOptions{}, nil)
	if *opts.Type != *playwright.ScreenshotTypePng {
		t.Error("default type should be png")
	}
	if opts.FullPage != nil || opts.OmitBackground != nil || opts.Timeout != nil {
		t.Error("zero options should stay engine defaults")
	}
	if opts.Scale != nil || opts.Caret != nil || opts.Animations != nil {
		t.Error("unset enums should stay engine defaults")
	}
}

func TestLocatorShotOptions(t *testing.T) {
	opts := locatorShotOptions(drive.ScreenshotOptions{Format: "png", OmitBackground: true})
	if *opts.Type != *playwright.ScreenshotTypePng {
		t.Error("type not mapped")
	}
	if opts.OmitBackground == nil || !*opts.OmitBackground {
		t.Error("omit background not set")
	}
}

func TestClickOptions(t *testing.T) {
	force := true
	opts := clickOptions(drive.ClickOptions{Force: &force, Button: "right", Count: 2})
	if opts.Force == nil || !*opts.Force {
		t.Error("force not passed")
	}
	if *opts.Button != *playwright.MouseButtonRight {
		t.Error("button not mapped")
	}
	if opts.ClickCount == nil || *opts.ClickCount != 2 {
		t.Error("click count not passed")
	}

	// Defaults stay with the engine.
	opts = clickOptions(drive.ClickOptions{})
	if opts.Force != nil || opts.Button != nil || opts.ClickCount != nil {
		t.Errorf("zero options leaked: %+v", opts)
	}
}
