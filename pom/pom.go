// Package pom provides Page Object Model base types: a Component that
// wraps element lookup and actions with structured logging, and a Page
// that binds a navigation target on top of it. Concrete page objects
// embed these and add semantic methods.
package pom

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/framecap/drive"
)

// errorIndicatorSelector resolves form controls flagged invalid.
const errorIndicatorSelector = `[aria-invalid="true"]`

// Component is the interaction wrapper. Every accessor and action emits
// exactly one log line before delegating to the capability; nothing is
// retried or swallowed. The label identifies the concrete page object in
// logs and is supplied by the constructor, never reflected.
type Component struct {
	label string
	page  drive.Page
	log   *slog.Logger
}

// NewComponent builds a Component over a live page. A nil logger falls
// back to slog.Default.
func NewComponent(label string, page drive.Page, log *slog.Logger) *Component {
	if log == nil {
		log = slog.Default()
	}
	return &Component{label: label, page: page, log: log}
}

// Label returns the constructor-supplied component label.
func (c *Component) Label() string { return c.label }

// Page returns the underlying capability page.
func (c *Component) Page() drive.Page { return c.page }

// --- accessors ---
// Lookup stays lazy: the returned Element queries the DOM only when used.
// Options such as drive.Exact refine the match and are passed through to
// the capability unchanged.

// ByText locates an element by visible text.
func (c *Component) ByText(text string, opts ...drive.LocateOption) drive.Element {
	c.logAccess("byText", text)
	return c.page.Locate(drive.Text(text).With(opts...))
}

// ByRole locates an element by ARIA role and accessible name. Pass an
// empty name to match by role alone.
func (c *Component) ByRole(role, name string, opts ...drive.LocateOption) drive.Element {
	c.logAccess("byRole", role+"/"+name)
	return c.page.Locate(drive.Role(role, name).With(opts...))
}

// ByTestID locates an element by data-testid.
func (c *Component) ByTestID(id string, opts ...drive.LocateOption) drive.Element {
	c.logAccess("byTestId", id)
	return c.page.Locate(drive.TestID(id).With(opts...))
}

// ByLabel locates a form control by its label text.
func (c *Component) ByLabel(label string, opts ...drive.LocateOption) drive.Element {
	c.logAccess("byLabel", label)
	return c.page.Locate(drive.Label(label).With(opts...))
}

// ByPlaceholder locates an input by placeholder text.
func (c *Component) ByPlaceholder(text string, opts ...drive.LocateOption) drive.Element {
	c.logAccess("byPlaceholder", text)
	return c.page.Locate(drive.Placeholder(text).With(opts...))
}

// ByAltText locates an image by alt text.
func (c *Component) ByAltText(text string, opts ...drive.LocateOption) drive.Element {
	c.logAccess("byAltText", text)
	return c.page.Locate(drive.AltText(text).With(opts...))
}

// BySelector locates an element by raw CSS selector.
func (c *Component) BySelector(sel string, opts ...drive.LocateOption) drive.Element {
	c.logAccess("bySelector", sel)
	return c.page.Locate(drive.CSS(sel).With(opts...))
}

// ErrorIndicator locates elements flagged invalid via aria-invalid,
// a convenience for form-validation assertions.
func (c *Component) ErrorIndicator() drive.Element {
	c.logAccess("errorIndicator", errorIndicatorSelector)
	return c.page.Locate(drive.CSS(errorIndicatorSelector))
}

// --- actions ---

// Click clicks the element. Unless the caller overrides it, the click is
// forced: actionability checks such as visibility and pointer
// interception are bypassed.
func (c *Component) Click(ctx context.Context, el drive.Element, opts ...drive.ClickOptions) error {
	o := drive.ClickOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Force == nil {
		force := true
		o.Force = &force
	}
	c.logAction("click", el)
	return el.Click(ctx, o)
}

// Fill replaces the element's value with the given text.
func (c *Component) Fill(ctx context.Context, el drive.Element, value string) error {
	c.logAction("fill", el)
	return el.Fill(ctx, value)
}

// Hover moves the pointer over the element.
func (c *Component) Hover(ctx context.Context, el drive.Element) error {
	c.logAction("hover", el)
	return el.Hover(ctx)
}

// Press sends a single key (e.g. "Enter", "Tab") to the element.
func (c *Component) Press(ctx context.Context, el drive.Element, key string) error {
	c.logAction("press", el)
	return el.Press(ctx, key)
}

// SelectOption selects the given options in a select element.
func (c *Component) SelectOption(ctx context.Context, el drive.Element, values ...string) error {
	c.logAction("selectOption", el)
	return el.SelectOption(ctx, values)
}

// WaitVisible blocks until the element is visible or the timeout expires.
func (c *Component) WaitVisible(ctx context.Context, el drive.Element, timeout time.Duration) error {
	c.logAction("waitVisible", el)
	return el.WaitVisible(ctx, timeout)
}

// WaitHidden blocks until the element is hidden or the timeout expires.
func (c *Component) WaitHidden(ctx context.Context, el drive.Element, timeout time.Duration) error {
	c.logAction("waitHidden", el)
	return el.WaitHidden(ctx, timeout)
}

func (c *Component) logAccess(accessor, key string) {
	c.log.Info(fmt.Sprintf("[%s] %s(%s)", c.label, accessor, key))
}

// logAction never fails the call: if the element cannot describe itself,
// a generic placeholder stands in.
func (c *Component) logAction(action string, el drive.Element) {
	c.log.Info(fmt.Sprintf("[%s] %s(%s)", c.label, action, describe(el)))
}

func describe(el drive.Element) (desc string) {
	defer func() {
		if recover() != nil {
			desc = "element"
		}
	}()
	if el == nil {
		return "element"
	}
	if d := el.Describe(); d != "" {
		return d
	}
	return "element"
}
