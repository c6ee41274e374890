package drive

import "testing"

func TestSelectorConstructors(t *testing.T) {
	cases := []struct {
		sel  Selector
		kind SelectorKind
		key  string
	}{
		{Text("Save"), ByText, "Save"},
		{Role("button", "Save"), ByRole, "button"},
		{TestID("save-btn"), ByTestID, "save-btn"},
		{Label("Email"), ByLabel, "Email"},
		{Placeholder("name"), ByPlaceholder, "name"},
		{AltText("logo"), ByAltText, "logo"},
		{CSS("#main"), ByCSS, "#main"},
	}
	for _, tc := range cases {
		if tc.sel.Kind != tc.kind || tc.sel.Key != tc.key {
			t.Errorf("selector %v: want kind %s key %s", tc.sel, tc.kind, tc.key)
		}
	}
}

func TestSelectorWith(t *testing.T) {
	sel := Text("Save").With(Exact())
	if !sel.Exact {
		t.Error("Exact option not applied")
	}
	if Text("Save").Exact {
		t.Error("With mutated the base selector")
	}
	if Label("Email").With().Exact {
		t.Error("no options should leave the selector unchanged")
	}
}

func TestSelectorString(t *testing.T) {
	if got := Text("Save").String(); got != "text=Save" {
		t.Errorf("String = %q", got)
	}
	if got := Role("button", "Save").String(); got != `role=button[name="Save"]` {
		t.Errorf("role String = %q", got)
	}
	if got := Role("button", "").String(); got != "role=button" {
		t.Errorf("bare role String = %q", got)
	}
}
