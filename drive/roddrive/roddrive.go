// Package roddrive binds the drive capability contract to go-rod. Rod
// has no Playwright-style semantic locators, so selectors compile to CSS,
// XPath-free JS lookups, or text regexes; screenshot decorations that CDP
// lacks natively (masks, extra style, caret and animation freezing) are
// injected as tagged DOM nodes and removed again after the capture.
package roddrive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/hazyhaar/framecap/drive"
)

type page struct {
	p *rod.Page
}

// Adapt wraps a Rod page as a drive.Page.
func Adapt(p *rod.Page) drive.Page {
	return &page{p: p}
}

func (p *page) Navigate(ctx context.Context, url string) error {
	pg := p.p.Context(ctx)
	// DOMContentLoaded is the minimal completion signal; sub-resources
	// may still be loading when this returns.
	wait := pg.WaitEvent(&proto.PageDomContentEventFired{})
	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("roddrive: navigate %s: %w", url, err)
	}
	wait()
	return nil
}

func (p *page) Locate(sel drive.Selector) drive.Element {
	return &element{page: p.p, sel: sel}
}

func (p *page) Screenshot(ctx context.Context, opts drive.ScreenshotOptions) ([]byte, error) {
	pg := p.p.Context(ctx)
	if opts.Timeout > 0 {
		pg = pg.Timeout(opts.Timeout)
	}

	undo, err := applyDecorations(pg, opts)
	if err != nil {
		return nil, fmt.Errorf("roddrive: decorate: %w", err)
	}
	defer undo()

	restore, err := omitBackground(pg, opts.OmitBackground)
	if err != nil {
		return nil, err
	}
	defer restore()

	req := &proto.PageCaptureScreenshot{Format: captureFormat(opts.Format)}
	if opts.Quality != nil {
		req.Quality = opts.Quality
	}
	if opts.Clip != nil {
		req.Clip = &proto.PageViewport{
			X: opts.Clip.X, Y: opts.Clip.Y,
			Width: opts.Clip.Width, Height: opts.Clip.Height,
			Scale: 1,
		}
	}

	data, err := pg.Screenshot(opts.FullPage, req)
	if err != nil {
		return nil, fmt.Errorf("roddrive: screenshot: %w", err)
	}
	return data, nil
}

func (p *page) NewSurface(ctx context.Context) (drive.Surface, error) {
	np, err := p.p.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("roddrive: new surface: %w", err)
	}
	return &surface{p: np.Context(ctx)}, nil
}

func (p *page) Title(ctx context.Context) (string, error) {
	info, err := p.p.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("roddrive: page info: %w", err)
	}
	return info.Title, nil
}

func (p *page) Content(ctx context.Context) (string, error) {
	html, err := p.p.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("roddrive: page content: %w", err)
	}
	return html, nil
}

type surface struct {
	p *rod.Page
}

func (s *surface) SetContent(ctx context.Context, html string) error {
	if err := s.p.Context(ctx).SetDocumentContent(html); err != nil {
		return fmt.Errorf("roddrive: set content: %w", err)
	}
	return nil
}

func (s *surface) LocateMarker(ctx context.Context, marker string) (drive.Element, error) {
	sel := fmt.Sprintf(`[data-framecap=%q]`, marker)
	if _, err := s.p.Context(ctx).Element(sel); err != nil {
		return nil, fmt.Errorf("roddrive: marker %s: %w", marker, err)
	}
	return &element{page: s.p, sel: drive.CSS(sel)}, nil
}

func (s *surface) Eval(ctx context.Context, script string) ([]byte, error) {
	res, err := s.p.Context(ctx).Eval(script)
	if err != nil {
		return nil, fmt.Errorf("roddrive: eval: %w", err)
	}
	data, err := json.Marshal(res.Value)
	if err != nil {
		return nil, fmt.Errorf("roddrive: encode eval result: %w", err)
	}
	return data, nil
}

func (s *surface) Close() error {
	return s.p.Close()
}

type element struct {
	page *rod.Page
	sel  drive.Selector
}

// resolve performs the deferred DOM query.
func (e *element) resolve(ctx context.Context) (*rod.Element, error) {
	el, err := findElement(e.page.Context(ctx), e.sel)
	if err != nil {
		return nil, fmt.Errorf("roddrive: locate %s: %w", e.sel, err)
	}
	return el, nil
}

func (e *element) Click(ctx context.Context, opts drive.ClickOptions) error {
	el, err := e.resolve(ctx)
	if err != nil {
		return err
	}
	count := opts.Count
	if count < 1 {
		count = 1
	}
	if opts.Force != nil && *opts.Force {
		// Forced click bypasses actionability: dispatch directly.
		_, err = el.Eval(`() => this.click()`)
		return err
	}
	return el.Click(mouseButton(opts.Button), count)
}

func (e *element) Fill(ctx context.Context, value string) error {
	el, err := e.resolve(ctx)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}

func (e *element) Hover(ctx context.Context) error {
	el, err := e.resolve(ctx)
	if err != nil {
		return err
	}
	return el.Hover()
}

func (e *element) Press(ctx context.Context, key string) error {
	el, err := e.resolve(ctx)
	if err != nil {
		return err
	}
	k, err := parseKey(key)
	if err != nil {
		return err
	}
	return el.Type(k)
}

func (e *element) SelectOption(ctx context.Context, values []string) error {
	el, err := e.resolve(ctx)
	if err != nil {
		return err
	}
	return el.Select(values, true, rod.SelectorTypeText)
}

func (e *element) WaitVisible(ctx context.Context, timeout time.Duration) error {
	el, err := e.resolve(ctx)
	if err != nil {
		return err
	}
	if timeout > 0 {
		el = el.Timeout(timeout)
	}
	return el.WaitVisible()
}

func (e *element) WaitHidden(ctx context.Context, timeout time.Duration) error {
	el, err := e.resolve(ctx)
	if err != nil {
		return err
	}
	if timeout > 0 {
		el = el.Timeout(timeout)
	}
	return el.WaitInvisible()
}

func (e *element) Screenshot(ctx context.Context, opts drive.ScreenshotOptions) ([]byte, error) {
	el, err := e.resolve(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Timeout > 0 {
		el = el.Timeout(opts.Timeout)
	}

	restore, err := omitBackground(e.page, opts.OmitBackground)
	if err != nil {
		return nil, err
	}
	defer restore()

	quality := 0
	if opts.Quality != nil {
		quality = *opts.Quality
	}
	data, err := el.Screenshot(captureFormat(opts.Format), quality)
	if err != nil {
		return nil, fmt.Errorf("roddrive: element screenshot: %w", err)
	}
	return data, nil
}

func (e *element) BoundingBox(ctx context.Context) (drive.Rect, error) {
	el, err := e.resolve(ctx)
	if err != nil {
		return drive.Rect{}, err
	}
	shape, err := el.Shape()
	if err != nil {
		return drive.Rect{}, fmt.Errorf("roddrive: element shape: %w", err)
	}
	box := shape.Box()
	if box == nil {
		return drive.Rect{}, fmt.Errorf("roddrive: element %s has no box", e.sel)
	}
	return drive.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *element) Describe() string { return e.sel.String() }

func captureFormat(format string) proto.PageCaptureScreenshotFormat {
	if format == "jpeg" {
		return proto.PageCaptureScreenshotFormatJpeg
	}
	return proto.PageCaptureScreenshotFormatPng
}

func mouseButton(button string) proto.InputMouseButton {
	switch button {
	case "right":
		return proto.InputMouseButtonRight
	case "middle":
		return proto.InputMouseButtonMiddle
	default:
		return proto.InputMouseButtonLeft
	}
}

// omitBackground makes the default background transparent for the capture
// and restores it afterwards.
func omitBackground(p *rod.Page, enabled bool) (func(), error) {
	if !enabled {
		return func() {}, nil
	}
	// Zero RGBA is fully transparent black.
	err := proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{},
	}.Call(p)
	if err != nil {
		return nil, fmt.Errorf("roddrive: omit background: %w", err)
	}
	return func() {
		_ = proto.EmulationSetDefaultBackgroundColorOverride{}.Call(p)
	}, nil
}
