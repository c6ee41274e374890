// Package drive defines the browser capability contract framecap depends
// on: pages, disposable surfaces, and element references. Implementations
// live in subpackages (pwdrive for Playwright, roddrive for Rod); the core
// packages only ever see these interfaces, so tests substitute fakes.
package drive

import (
	"context"
	"time"
)

// Rect is a pixel-space rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScreenshotOptions is passed through to the capability unchanged. Zero
// values mean "engine default". Format applies to page captures only;
// element captures in the compositor are always PNG.
type ScreenshotOptions struct {
	Format         string // "png" | "jpeg"; empty = png
	Clip           *Rect
	FullPage       bool
	Quality        *int // jpeg only, 0-100
	Masks          []Selector
	MaskColor      string
	OmitBackground bool
	Scale          string // "css" | "device"
	Style          string // extra stylesheet applied during capture
	Caret          string // "hide" | "initial"
	Animations     string // "disabled" | "allow"
	Timeout        time.Duration
}

// ClickOptions controls a click action. Force nil leaves the decision to
// the caller above (pom defaults it to true).
type ClickOptions struct {
	Force  *bool
	Button string // "left" | "right" | "middle"; empty = left
	Count  int    // 0 = 1
}

// Page is a live browsing context owned by the caller. framecap borrows
// it and never navigates or mutates it except through the operations the
// caller explicitly invokes.
type Page interface {
	// Navigate loads the URL and returns once the DOM is constructed
	// (it does not wait for sub-resources).
	Navigate(ctx context.Context, url string) error

	// Locate builds a lazy element reference. No DOM query happens
	// until the reference is acted on.
	Locate(sel Selector) Element

	// Screenshot captures the page with the given options.
	Screenshot(ctx context.Context, opts ScreenshotOptions) ([]byte, error)

	// NewSurface opens a disposable, isolated surface on the same
	// browsing context. The caller must Close it.
	NewSurface(ctx context.Context) (Surface, error)

	Title(ctx context.Context) (string, error)
	Content(ctx context.Context) (string, error)
}

// Surface is a disposable rendering target for content the caller
// provides. It never shares state with the page that opened it.
type Surface interface {
	// SetContent replaces the document and returns once it has loaded.
	SetContent(ctx context.Context, html string) error

	// LocateMarker resolves the element carrying the given
	// data-framecap marker value.
	LocateMarker(ctx context.Context, marker string) (Element, error)

	// Eval runs a script (sync or async) and returns its result as JSON.
	Eval(ctx context.Context, script string) ([]byte, error)

	Close() error
}

// Element is a handle to a located element. All methods resolve the
// underlying selector at call time.
type Element interface {
	Click(ctx context.Context, opts ClickOptions) error
	Fill(ctx context.Context, value string) error
	Hover(ctx context.Context) error
	Press(ctx context.Context, key string) error
	SelectOption(ctx context.Context, values []string) error
	WaitVisible(ctx context.Context, timeout time.Duration) error
	WaitHidden(ctx context.Context, timeout time.Duration) error
	Screenshot(ctx context.Context, opts ScreenshotOptions) ([]byte, error)
	BoundingBox(ctx context.Context) (Rect, error)

	// Describe returns a short human-readable description of the
	// target for logging. It must not touch the DOM.
	Describe() string
}
