package pom

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/framecap/drive"
)

// Page extends Component with an immutable navigation target. The target
// is bound at construction and may be a literal URL or a URL template the
// embedding page object resolves before construction.
type Page struct {
	*Component
	target string
}

// NewPage builds a Page bound to a navigation target.
func NewPage(label, target string, page drive.Page, log *slog.Logger) *Page {
	return &Page{Component: NewComponent(label, page, log), target: target}
}

// Target returns the bound navigation target.
func (p *Page) Target() string { return p.target }

// Navigate loads the bound target and returns once the DOM is
// constructed. A failed load surfaces as *NavigationError; nothing is
// retried.
func (p *Page) Navigate(ctx context.Context) error {
	p.logAccess("navigate", p.target)
	if err := p.page.Navigate(ctx, p.target); err != nil {
		return &NavigationError{URL: p.target, Err: err}
	}
	return nil
}

// NavigationError reports a navigation that failed to reach its
// completion signal.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("pom: navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
