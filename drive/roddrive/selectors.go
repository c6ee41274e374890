package roddrive

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"

	"github.com/hazyhaar/framecap/drive"
)

// findElement resolves a drive selector against the page. CSS-expressible
// kinds compile to attribute selectors; text and label need JS.
func findElement(p *rod.Page, sel drive.Selector) (*rod.Element, error) {
	switch sel.Kind {
	case drive.ByCSS:
		return p.Element(sel.Key)
	case drive.ByTestID:
		return p.Element(attrSelector("data-testid", sel.Key))
	case drive.ByPlaceholder:
		return p.Element(attrSelector("placeholder", sel.Key))
	case drive.ByAltText:
		return p.Element(attrSelector("alt", sel.Key))
	case drive.ByText:
		return p.ElementR("*", textPattern(sel.Key, sel.Exact))
	case drive.ByLabel:
		return p.ElementByJS(rod.Eval(labelLookupJS, sel.Key))
	case drive.ByRole:
		if sel.Name == "" {
			return p.Element(attrSelector("role", sel.Key))
		}
		return p.ElementByJS(rod.Eval(roleLookupJS, sel.Key, sel.Name))
	default:
		return nil, fmt.Errorf("unknown selector kind %q", sel.Kind)
	}
}

func attrSelector(attr, value string) string {
	return fmt.Sprintf("[%s=%q]", attr, value)
}

// textPattern builds the JS regex rod matches element text against.
func textPattern(text string, exact bool) string {
	quoted := regexp.QuoteMeta(text)
	if exact {
		return "^" + quoted + "$"
	}
	return quoted
}

// labelLookupJS resolves a form control from its label text, falling back
// to aria-label.
const labelLookupJS = `(text) => {
	for (const label of document.querySelectorAll('label')) {
		if (!label.textContent.trim().includes(text)) continue;
		if (label.htmlFor) {
			const byFor = document.getElementById(label.htmlFor);
			if (byFor) return byFor;
		}
		const nested = label.querySelector('input, select, textarea');
		if (nested) return nested;
	}
	return document.querySelector('[aria-label="' + CSS.escape(text) + '"]');
}`

// roleLookupJS matches an explicit role attribute narrowed by accessible
// name (aria-label or visible text).
const roleLookupJS = `(role, name) => {
	for (const el of document.querySelectorAll('[role="' + CSS.escape(role) + '"]')) {
		const label = el.getAttribute('aria-label') || el.textContent.trim();
		if (label.includes(name)) return el;
	}
	return null;
}`

// namedKeys maps the key names the pom layer uses to rod input keys.
var namedKeys = map[string]input.Key{
	"Enter":      input.Enter,
	"Tab":        input.Tab,
	"Escape":     input.Escape,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
	"Home":       input.Home,
	"End":        input.End,
	"PageUp":     input.PageUp,
	"PageDown":   input.PageDown,
}

func parseKey(name string) (input.Key, error) {
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return input.Key(r), nil
	}
	return 0, fmt.Errorf("roddrive: unknown key %q", name)
}

// applyDecorations injects the capture-only page decorations CDP has no
// native support for: mask overlays, an extra stylesheet, caret hiding
// and animation freezing. Everything injected carries a data-framecap-tmp
// attribute and the returned undo removes it all, so the page is back to
// its previous state after the capture.
func applyDecorations(p *rod.Page, opts drive.ScreenshotOptions) (func(), error) {
	var style strings.Builder
	if opts.Caret == "hide" {
		style.WriteString("* { caret-color: transparent !important }\n")
	}
	if opts.Animations == "disabled" {
		style.WriteString("*, *::before, *::after { animation: none !important; transition: none !important }\n")
	}
	if opts.Style != "" {
		style.WriteString(opts.Style)
	}

	masks := make([]string, 0, len(opts.Masks))
	for _, m := range opts.Masks {
		if m.Kind == drive.ByCSS {
			masks = append(masks, m.Key)
		}
	}
	maskColor := opts.MaskColor
	if maskColor == "" {
		maskColor = "#ff00ff"
	}

	if style.Len() == 0 && len(masks) == 0 {
		return func() {}, nil
	}

	_, err := p.Eval(decorateJS, style.String(), masks, maskColor)
	if err != nil {
		return nil, err
	}
	return func() {
		_, _ = p.Eval(undecorateJS)
	}, nil
}

const decorateJS = `(css, masks, maskColor) => {
	if (css) {
		const style = document.createElement('style');
		style.setAttribute('data-framecap-tmp', '1');
		style.textContent = css;
		document.head.appendChild(style);
	}
	for (const sel of masks) {
		for (const el of document.querySelectorAll(sel)) {
			const r = el.getBoundingClientRect();
			const cover = document.createElement('div');
			cover.setAttribute('data-framecap-tmp', '1');
			cover.style.cssText = 'position:fixed;z-index:2147483647;background:' + maskColor +
				';left:' + r.left + 'px;top:' + r.top + 'px;width:' + r.width + 'px;height:' + r.height + 'px';
			document.body.appendChild(cover);
		}
	}
}`

const undecorateJS = `() => {
	for (const el of document.querySelectorAll('[data-framecap-tmp]')) el.remove();
}`
