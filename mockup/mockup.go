// Package mockup composites a styled browser-window frame around a page
// screenshot for documentation images: traffic-light dots, an address bar
// showing a caller-supplied URL, and the capture embedded at its native
// pixel size. All rendering happens in disposable surfaces; the source
// page is only read, never mutated.
package mockup

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/framecap/drive"
)

// Format selects the encoding of the inner capture. The outer chrome
// capture is always PNG so the rounded corners stay transparent.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// Fallback dimensions when the capture cannot be measured. Kept as
// explicit policy: a degenerate capture still produces a frame instead of
// failing the whole call.
const (
	fallbackWidth  = 800
	fallbackHeight = 600
)

// ParseFormat validates a format discriminator. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatJPEG:
		return FormatJPEG, nil
	default:
		return "", &UnsupportedFormatError{Value: s}
	}
}

func (f Format) mime() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Request describes one composition. It never outlives the call; there is
// no cross-call state. Concurrent requests against the same Page are only
// as safe as the underlying engine makes concurrent surfaces on one
// browsing context — callers serialize if in doubt.
type Request struct {
	// Page is the live source page, borrowed for the call.
	Page drive.Page

	// DisplayURL is shown verbatim (HTML-escaped) in the address bar.
	// It does not have to match the page's real URL.
	DisplayURL string

	// Format encodes the inner capture. Empty means PNG.
	Format Format

	// OutputPath, when set, receives the final PNG bytes.
	OutputPath string

	// Shot is passed through to the source capture unchanged.
	Shot drive.ScreenshotOptions

	// Focus, when set, highlights the matching element's region in the
	// framed image and dims the rest of the content.
	Focus *drive.Selector
}

// Composer renders mockups with a fixed theme.
type Composer struct {
	theme Theme
	log   *slog.Logger
}

// NewComposer builds a Composer. Zero theme fields and a nil logger fall
// back to defaults.
func NewComposer(theme Theme, log *slog.Logger) *Composer {
	theme.applyDefaults()
	if log == nil {
		log = slog.Default()
	}
	return &Composer{theme: theme, log: log}
}

// Compose captures the source page, measures the capture, wraps it in the
// chrome template on a disposable surface, and returns the framed image
// as PNG bytes. Both surfaces it opens are released before it returns,
// on success and on failure.
func (c *Composer) Compose(ctx context.Context, req Request) ([]byte, error) {
	// Fail fast before any capability work.
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}

	shot := req.Shot
	shot.Format = string(format)
	inner, err := req.Page.Screenshot(ctx, shot)
	if err != nil {
		return nil, &CompositionError{Op: "capture source", Err: err}
	}

	dataURL := "data:" + format.mime() + ";base64," + base64.StdEncoding.EncodeToString(inner)

	width, height, err := c.measure(ctx, req.Page, dataURL)
	if err != nil {
		return nil, err
	}

	var focus *focusBox
	if req.Focus != nil {
		focus = c.focusBox(ctx, req.Page, *req.Focus)
	}

	html, err := renderChrome(chromeData{
		Theme:      c.theme,
		DisplayURL: req.DisplayURL,
		DataURL:    dataURL,
		Width:      width,
		Height:     height,
		Focus:      focus,
	})
	if err != nil {
		return nil, &CompositionError{Op: "render chrome", Err: err}
	}

	out, err := c.captureChrome(ctx, req.Page, html, req.Shot.Timeout)
	if err != nil {
		return nil, err
	}

	if req.OutputPath != "" {
		if err := writeImage(req.OutputPath, out); err != nil {
			return nil, &CompositionError{Op: "write output", Err: err}
		}
		c.log.Info("mockup: written", "path", req.OutputPath, "bytes", len(out))
	}

	return out, nil
}

// measure renders the data URL in a disposable surface and reads the
// image's natural dimensions. An unreadable dimension degrades to the
// fallback instead of failing: accuracy here is cosmetic.
func (c *Composer) measure(ctx context.Context, page drive.Page, dataURL string) (int, int, error) {
	surface, err := page.NewSurface(ctx)
	if err != nil {
		return 0, 0, &CompositionError{Op: "open measure surface", Err: err}
	}
	defer c.closeSurface(surface)

	if err := surface.SetContent(ctx, probeDoc(dataURL)); err != nil {
		return 0, 0, &CompositionError{Op: "set measure content", Err: err}
	}

	raw, err := surface.Eval(ctx, measureScript)
	if err != nil {
		c.log.Warn("mockup: dimension fallback", "reason", err)
		return fallbackWidth, fallbackHeight, nil
	}

	var dims struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := json.Unmarshal(raw, &dims); err != nil || dims.Width <= 0 || dims.Height <= 0 {
		c.log.Warn("mockup: dimension fallback", "result", string(raw))
		return fallbackWidth, fallbackHeight, nil
	}
	return int(math.Round(dims.Width)), int(math.Round(dims.Height)), nil
}

// focusBox reads the focus target's bounding box from the source page.
// That is a read-only query; failure degrades to no highlight.
func (c *Composer) focusBox(ctx context.Context, page drive.Page, sel drive.Selector) *focusBox {
	box, err := page.Locate(sel).BoundingBox(ctx)
	if err != nil {
		c.log.Warn("mockup: focus target not highlighted", "selector", sel.String(), "error", err)
		return nil
	}
	return &focusBox{
		X: int(math.Round(box.X)),
		Y: int(math.Round(box.Y)),
		W: int(math.Round(box.Width)),
		H: int(math.Round(box.Height)),
	}
}

// captureChrome renders the chrome document in a second disposable
// surface and captures just the window element, always PNG with the
// background omitted so the rounded corners stay transparent.
func (c *Composer) captureChrome(ctx context.Context, page drive.Page, html string, timeout time.Duration) ([]byte, error) {
	surface, err := page.NewSurface(ctx)
	if err != nil {
		return nil, &CompositionError{Op: "open chrome surface", Err: err}
	}
	defer c.closeSurface(surface)

	if err := surface.SetContent(ctx, html); err != nil {
		return nil, &CompositionError{Op: "set chrome content", Err: err}
	}

	el, err := surface.LocateMarker(ctx, windowMarker)
	if err != nil {
		return nil, &CompositionError{Op: "locate chrome", Err: err}
	}

	out, err := el.Screenshot(ctx, drive.ScreenshotOptions{
		Format:         string(FormatPNG),
		OmitBackground: true,
		Timeout:        timeout,
	})
	if err != nil {
		return nil, &CompositionError{Op: "capture chrome", Err: err}
	}
	return out, nil
}

func (c *Composer) closeSurface(s drive.Surface) {
	if err := s.Close(); err != nil {
		c.log.Warn("mockup: close surface", "error", err)
	}
}

func writeImage(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// UnsupportedFormatError reports an unrecognised format discriminator.
// It is returned before any capability work happens.
type UnsupportedFormatError struct {
	Value string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("mockup: unsupported format %q (want png or jpeg)", e.Value)
}

// CompositionError wraps a capability failure during composition. Op
// names the pipeline stage that failed. Surfaces opened before the
// failure are already released when this surfaces to the caller.
type CompositionError struct {
	Op  string
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("mockup: %s: %v", e.Op, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }
