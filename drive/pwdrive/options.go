package pwdrive

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/hazyhaar/framecap/drive"
)

func markerSelector(marker string) string {
	return fmt.Sprintf(`[data-framecap=%q]`, marker)
}

func locatorFor(p playwright.Page, sel drive.Selector) (playwright.Locator, error) {
	switch sel.Kind {
	case drive.ByText:
		opts := playwright.PageGetByTextOptions{}
		if sel.Exact {
			opts.Exact = playwright.Bool(true)
		}
		return p.GetByText(sel.Key, opts), nil
	case drive.ByRole:
		opts := playwright.PageGetByRoleOptions{}
		if sel.Name != "" {
			opts.Name = sel.Name
		}
		if sel.Exact {
			opts.Exact = playwright.Bool(true)
		}
		return p.GetByRole(playwright.AriaRole(sel.Key), opts), nil
	case drive.ByTestID:
		return p.GetByTestId(sel.Key), nil
	case drive.ByLabel:
		opts := playwright.PageGetByLabelOptions{}
		if sel.Exact {
			opts.Exact = playwright.Bool(true)
		}
		return p.GetByLabel(sel.Key, opts), nil
	case drive.ByPlaceholder:
		opts := playwright.PageGetByPlaceholderOptions{}
		if sel.Exact {
			opts.Exact = playwright.Bool(true)
		}
		return p.GetByPlaceholder(sel.Key, opts), nil
	case drive.ByAltText:
		opts := playwright.PageGetByAltTextOptions{}
		if sel.Exact {
			opts.Exact = playwright.Bool(true)
		}
		return p.GetByAltText(sel.Key, opts), nil
	case drive.ByCSS:
		return p.Locator(sel.Key), nil
	default:
		return nil, fmt.Errorf("pwdrive: unknown selector kind %q", sel.Kind)
	}
}

func pageShotOptions(o drive.ScreenshotOptions, masks []playwright.Locator) playwright.PageScreenshotOptions {
	opts := playwright.PageScreenshotOptions{
		Type: shotType(o.Format),
	}
	if o.Clip != nil {
		opts.Clip = &playwright.Rect{X: o.Clip.X, Y: o.Clip.Y, Width: o.Clip.Width, Height: o.Clip.Height}
	}
	if o.FullPage {
		opts.FullPage = playwright.Bool(true)
	}
	if o.Quality != nil {
		opts.Quality = o.Quality
	}
	if len(masks) > 0 {
		opts.Mask = masks
	}
	if o.MaskColor != "" {
		opts.MaskColor = playwright.String(o.MaskColor)
	}
	if o.OmitBackground {
		opts.OmitBackground = playwright.Bool(true)
	}
	opts.Scale = shotScale(o.Scale)
	if o.Style != "" {
		opts.Style = playwright.String(o.Style)
	}
	opts.Caret = shotCaret(o.Caret)
	opts.Animations = shotAnimations(o.Animations)
	if o.Timeout > 0 {
		opts.Timeout = playwright.Float(float64(o.Timeout.Milliseconds()))
	}
	return opts
}

func locatorShotOptions(o drive.ScreenshotOptions) playwright.LocatorScreenshotOptions {
	opts := playwright.LocatorScreenshotOptions{
		Type: shotType(o.Format),
	}
	if o.Quality != nil {
		opts.Quality = o.Quality
	}
	if o.MaskColor != "" {
		opts.MaskColor = playwright.String(o.MaskColor)
	}
	if o.OmitBackground {
		opts.OmitBackground = playwright.Bool(true)
	}
	opts.Scale = shotScale(o.Scale)
	if o.Style != "" {
		opts.Style = playwright.String(o.Style)
	}
	opts.Caret = shotCaret(o.Caret)
	opts.Animations = shotAnimations(o.Animations)
	if o.Timeout > 0 {
		opts.Timeout = playwright.Float(float64(o.Timeout.Milliseconds()))
	}
	return opts
}

func clickOptions(o drive.ClickOptions) playwright.LocatorClickOptions {
	opts := playwright.LocatorClickOptions{Force: o.Force}
	switch o.Button {
	case "right":
		opts.Button = playwright.MouseButtonRight
	case "middle":
		opts.Button = playwright.MouseButtonMiddle
	case "", "left":
		// engine default
	}
	if o.Count > 1 {
		opts.ClickCount = playwright.Int(o.Count)
	}
	return opts
}

func shotType(format string) *playwright.ScreenshotType {
	if format == "jpeg" {
		return playwright.ScreenshotTypeJpeg
	}
	return playwright.ScreenshotTypePng
}

func shotScale(scale string) *playwright.ScreenshotScale {
	switch scale {
	case "css":
		return playwright.ScreenshotScaleCss
	case "device":
		return playwright.ScreenshotScaleDevice
	}
	return nil
}

func shotCaret(caret string) *playwright.ScreenshotCaret {
	switch caret {
	case "hide":
		return playwright.ScreenshotCaretHide
	case "initial":
		return playwright.ScreenshotCaretInitial
	}
	return nil
}

func shotAnimations(animations string) *playwright.ScreenshotAnimations {
	switch animations {
	case "disabled":
		return playwright.ScreenshotAnimationsDisabled
	case "allow":
		return playwright.ScreenshotAnimationsAllow
	}
	return nil
}
