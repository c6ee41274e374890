package drive

import "fmt"

// SelectorKind discriminates how a Selector's key is interpreted.
type SelectorKind string

const (
	ByText        SelectorKind = "text"
	ByRole        SelectorKind = "role"
	ByTestID      SelectorKind = "testid"
	ByLabel       SelectorKind = "label"
	ByPlaceholder SelectorKind = "placeholder"
	ByAltText     SelectorKind = "alttext"
	ByCSS         SelectorKind = "css"
)

// LocateOption refines how a Selector matches.
type LocateOption func(*Selector)

// Exact requires a whole-string match instead of substring matching. It
// applies to text, role-name, label, placeholder and alt-text lookups.
func Exact() LocateOption {
	return func(s *Selector) { s.Exact = true }
}

// Selector describes how to find an element. Building one performs no DOM
// work; the binding resolves it when the element is used.
type Selector struct {
	Kind  SelectorKind
	Key   string
	Exact bool
	// Name narrows a role lookup by accessible name. Ignored for other
	// kinds.
	Name string
}

// Text matches by visible text content.
func Text(s string) Selector { return Selector{Kind: ByText, Key: s} }

// Role matches by ARIA role, optionally narrowed by accessible name.
func Role(role, name string) Selector { return Selector{Kind: ByRole, Key: role, Name: name} }

// TestID matches by data-testid attribute.
func TestID(id string) Selector { return Selector{Kind: ByTestID, Key: id} }

// Label matches a form control by its associated label text.
func Label(s string) Selector { return Selector{Kind: ByLabel, Key: s} }

// Placeholder matches an input by placeholder text.
func Placeholder(s string) Selector { return Selector{Kind: ByPlaceholder, Key: s} }

// AltText matches an image by alt text.
func AltText(s string) Selector { return Selector{Kind: ByAltText, Key: s} }

// CSS matches by a raw CSS selector.
func CSS(s string) Selector { return Selector{Kind: ByCSS, Key: s} }

// With returns a copy of the selector with the given options applied.
func (s Selector) With(opts ...LocateOption) Selector {
	for _, o := range opts {
		o(&s)
	}
	return s
}

func (s Selector) String() string {
	if s.Kind == ByRole && s.Name != "" {
		return fmt.Sprintf("%s=%s[name=%q]", s.Kind, s.Key, s.Name)
	}
	return fmt.Sprintf("%s=%s", s.Kind, s.Key)
}
