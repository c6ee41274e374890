package mockup

import (
	"fmt"
	"html/template"
	"strings"
)

// windowMarker identifies the chrome container element for the final
// capture. It is a structural data attribute so theme CSS changes cannot
// break the lookup.
const windowMarker = "window"

// chromeData feeds the chrome template. DisplayURL is a plain string and
// gets contextual HTML escaping; DataURL is base64 the compositor encoded
// itself and is exempted from URL sanitisation at render time.
type chromeData struct {
	Theme      Theme
	DisplayURL string
	DataURL    string
	Width      int
	Height     int
	Focus      *focusBox
}

// focusBox positions the highlight ring inside the content region, in
// inner-image pixel coordinates.
type focusBox struct {
	X, Y, W, H int
}

var chromeTmpl = template.Must(template.New("chrome").Funcs(template.FuncMap{
	"css":    func(s string) template.CSS { return template.CSS(s) },
	"marker": func() string { return windowMarker },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  html, body { margin: 0; padding: 0; background: transparent; }
  .window {
    display: inline-block;
    width: {{.Width}}px;
    border: 1px solid {{css .Theme.BorderColor}};
    border-radius: {{.Theme.CornerRadius}}px;
    overflow: hidden;
    background: {{css .Theme.BarBackground}};
    font-family: {{css .Theme.FontFamily}};
  }
  .bar {
    display: flex;
    align-items: center;
    height: {{.Theme.BarHeight}}px;
    padding: 0 12px;
  }
  .dot { width: 12px; height: 12px; border-radius: 50%; margin-right: 8px; flex: none; }
  .addr {
    flex: 1;
    min-width: 0;
    margin-left: 8px;
    background: {{css .Theme.AddressBackground}};
    color: {{css .Theme.AddressColor}};
    border-radius: 6px;
    padding: 4px 10px;
    font-size: 12px;
    white-space: nowrap;
    overflow: hidden;
    text-overflow: ellipsis;
  }
  .content { position: relative; overflow: hidden; line-height: 0; }
  .focus-ring {
    position: absolute;
    border: 2px solid {{css .Theme.FocusColor}};
    border-radius: 3px;
    box-shadow: 0 0 0 99999px rgba(0, 0, 0, {{.Theme.DimOpacity}});
  }
</style>
</head>
<body>
<div class="window" data-framecap="{{marker}}">
  <div class="bar">
    <span class="dot" style="background: {{css .Theme.DotClose}}"></span>
    <span class="dot" style="background: {{css .Theme.DotMinimize}}"></span>
    <span class="dot" style="background: {{css .Theme.DotZoom}}"></span>
    <div class="addr">&#128274; {{.DisplayURL}}</div>
  </div>
  <div class="content" style="width: {{.Width}}px; height: {{.Height}}px">
    <img src="{{.DataURL}}" width="{{.Width}}" height="{{.Height}}" alt="">
{{- if .Focus}}
    <div class="focus-ring" style="left: {{.Focus.X}}px; top: {{.Focus.Y}}px; width: {{.Focus.W}}px; height: {{.Focus.H}}px"></div>
{{- end}}
  </div>
</div>
</body>
</html>
`))

func renderChrome(d chromeData) (string, error) {
	// The data URL is trusted local output of the capture step; without
	// the template.URL exemption html/template would reject the data:
	// scheme.
	view := struct {
		chromeData
		DataURL template.URL
	}{chromeData: d, DataURL: template.URL(d.DataURL)}

	var sb strings.Builder
	if err := chromeTmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("mockup: render chrome: %w", err)
	}
	return sb.String(), nil
}

// probeDoc embeds the captured image alone so its natural dimensions can
// be read after decode.
func probeDoc(dataURL string) string {
	return `<!DOCTYPE html><html><body style="margin:0"><img id="probe" src="` + dataURL + `"></body></html>`
}

// measureScript resolves once the probe image has decoded and reports its
// natural pixel dimensions. Zero dimensions signal a decode failure.
const measureScript = `async () => {
	const img = document.getElementById('probe');
	if (!img) return { width: 0, height: 0 };
	if (!img.complete) {
		await new Promise((resolve) => {
			img.onload = resolve;
			img.onerror = resolve;
		});
	}
	return { width: img.naturalWidth, height: img.naturalHeight };
}`
