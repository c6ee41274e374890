// Package pwdrive binds the drive capability contract to
// playwright-community/playwright-go. Playwright locators are lazy by
// construction, which matches the contract's lookup semantics directly.
//
// Playwright carries its own timeout machinery, so the context passed to
// these methods is not consulted beyond what the options encode.
package pwdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/hazyhaar/framecap/drive"
)

type page struct {
	pw playwright.Page
}

// Adapt wraps a Playwright page as a drive.Page.
func Adapt(p playwright.Page) drive.Page {
	return &page{pw: p}
}

func (p *page) Navigate(_ context.Context, url string) error {
	// Domcontentloaded is the minimal completion signal: DOM built,
	// sub-resources possibly still loading.
	_, err := p.pw.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("pwdrive: goto %s: %w", url, err)
	}
	return nil
}

func (p *page) Locate(sel drive.Selector) drive.Element {
	loc, err := locatorFor(p.pw, sel)
	return &element{loc: loc, desc: sel.String(), err: err}
}

func (p *page) Screenshot(_ context.Context, opts drive.ScreenshotOptions) ([]byte, error) {
	data, err := p.pw.Screenshot(pageShotOptions(opts, p.maskLocators(opts.Masks)))
	if err != nil {
		return nil, fmt.Errorf("pwdrive: screenshot: %w", err)
	}
	return data, nil
}

func (p *page) NewSurface(_ context.Context) (drive.Surface, error) {
	np, err := p.pw.Context().NewPage()
	if err != nil {
		return nil, fmt.Errorf("pwdrive: new surface: %w", err)
	}
	return &surface{pw: np}, nil
}

func (p *page) Title(context.Context) (string, error)   { return p.pw.Title() }
func (p *page) Content(context.Context) (string, error) { return p.pw.Content() }

func (p *page) maskLocators(masks []drive.Selector) []playwright.Locator {
	if len(masks) == 0 {
		return nil
	}
	out := make([]playwright.Locator, 0, len(masks))
	for _, m := range masks {
		if loc, err := locatorFor(p.pw, m); err == nil {
			out = append(out, loc)
		}
	}
	return out
}

type surface struct {
	pw playwright.Page
}

func (s *surface) SetContent(_ context.Context, html string) error {
	err := s.pw.SetContent(html, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return fmt.Errorf("pwdrive: set content: %w", err)
	}
	return nil
}

func (s *surface) LocateMarker(_ context.Context, marker string) (drive.Element, error) {
	loc := s.pw.Locator(markerSelector(marker))
	return &element{loc: loc, desc: "marker=" + marker}, nil
}

func (s *surface) Eval(_ context.Context, script string) ([]byte, error) {
	res, err := s.pw.Evaluate(script)
	if err != nil {
		return nil, fmt.Errorf("pwdrive: eval: %w", err)
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("pwdrive: encode eval result: %w", err)
	}
	return data, nil
}

func (s *surface) Close() error {
	return s.pw.Close()
}

type element struct {
	loc  playwright.Locator
	desc string
	err  error
}

func (e *element) resolve() (playwright.Locator, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.loc, nil
}

func (e *element) Click(_ context.Context, opts drive.ClickOptions) error {
	loc, err := e.resolve()
	if err != nil {
		return err
	}
	return loc.Click(clickOptions(opts))
}

func (e *element) Fill(_ context.Context, value string) error {
	loc, err := e.resolve()
	if err != nil {
		return err
	}
	return loc.Fill(value)
}

func (e *element) Hover(context.Context) error {
	loc, err := e.resolve()
	if err != nil {
		return err
	}
	return loc.Hover()
}

func (e *element) Press(_ context.Context, key string) error {
	loc, err := e.resolve()
	if err != nil {
		return err
	}
	return loc.Press(key)
}

func (e *element) SelectOption(_ context.Context, values []string) error {
	loc, err := e.resolve()
	if err != nil {
		return err
	}
	_, err = loc.SelectOption(playwright.SelectOptionValues{Values: &values})
	return err
}

func (e *element) WaitVisible(_ context.Context, timeout time.Duration) error {
	return e.waitFor(playwright.WaitForSelectorStateVisible, timeout)
}

func (e *element) WaitHidden(_ context.Context, timeout time.Duration) error {
	return e.waitFor(playwright.WaitForSelectorStateHidden, timeout)
}

func (e *element) waitFor(state *playwright.WaitForSelectorState, timeout time.Duration) error {
	loc, err := e.resolve()
	if err != nil {
		return err
	}
	opts := playwright.LocatorWaitForOptions{State: state}
	if timeout > 0 {
		opts.Timeout = playwright.Float(float64(timeout.Milliseconds()))
	}
	return loc.WaitFor(opts)
}

func (e *element) Screenshot(_ context.Context, opts drive.ScreenshotOptions) ([]byte, error) {
	loc, err := e.resolve()
	if err != nil {
		return nil, err
	}
	data, err := loc.Screenshot(locatorShotOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("pwdrive: element screenshot: %w", err)
	}
	return data, nil
}

func (e *element) BoundingBox(context.Context) (drive.Rect, error) {
	loc, err := e.resolve()
	if err != nil {
		return drive.Rect{}, err
	}
	box, err := loc.BoundingBox()
	if err != nil {
		return drive.Rect{}, fmt.Errorf("pwdrive: bounding box: %w", err)
	}
	if box == nil {
		return drive.Rect{}, fmt.Errorf("pwdrive: element %s has no bounding box", e.desc)
	}
	return drive.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *element) Describe() string { return e.desc }
