package roddrive

import (
	"testing"

	"github.com/go-rod/rod/lib/input"
)

func TestAttrSelector(t *testing.T) {
	cases := []struct {
		attr, value, want string
	}{
		{"data-testid", "login-btn", `[data-testid="login-btn"]`},
		{"placeholder", `with "quotes"`, `[placeholder="with \"quotes\""]`},
		{"alt", "logo", `[alt="logo"]`},
	}
	for _, tc := range cases {
		if got := attrSelector(tc.attr, tc.value); got != tc.want {
			t.Errorf("attrSelector(%s, %s) = %s, want %s", tc.attr, tc.value, got, tc.want)
		}
	}
}

func TestTextPattern(t *testing.T) {
	if got := textPattern("Save (all)", false); got != `Save \(all\)` {
		t.Errorf("textPattern = %s", got)
	}
	if got := textPattern("OK", true); got != "^OK$" {
		t.Errorf("exact textPattern = %s", got)
	}
}

func TestParseKey(t *testing.T) {
	named := map[string]input.Key{
		"Enter":     input.Enter,
		"Tab":       input.Tab,
		"Escape":    input.Escape,
		"ArrowDown": input.ArrowDown,
	}
	for name, want := range named {
		k, err := parseKey(name)
		if err != nil {
			t.Errorf("parseKey(%s): %v", name, err)
		}
		if k != want {
			t.Errorf("parseKey(%s) = %v, want %v", name, k, want)
		}
	}

	if k, err := parseKey("a"); err != nil || k != input.Key('a') {
		t.Errorf("parseKey(a) = %v, %v", k, err)
	}

	if _, err := parseKey("NotAKey"); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestCaptureFormat(t *testing.T) {
	if captureFormat("jpeg") == captureFormat("png") {
		t.Error("formats not distinguished")
	}
	if captureFormat("") != captureFormat("png") {
		t.Error("empty format should default to png")
	}
}
