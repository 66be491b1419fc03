package types

import "testing"

func TestHighlightStringRoundTrip(t *testing.T) {
	cases := []struct {
		h    Highlight
		name string
	}{
		{Attribute, "attribute"},
		{ConstantBuiltin, "constant.builtin"},
		{PunctuationDelimiter, "punctuation.delimiter"},
		{VariableParameter, "variable.parameter"},
		{Unknown, ""},
	}

	for _, c := range cases {
		if got := c.h.String(); got != c.name {
			t.Errorf("Highlight(%d).String() = %q, want %q", c.h, got, c.name)
		}
		if got := ParseHighlight(c.name); c.name != "" && got != c.h {
			t.Errorf("ParseHighlight(%q) = %v, want %v", c.name, got, c.h)
		}
	}
}

func TestParseHighlightUnknown(t *testing.T) {
	if got := ParseHighlight("not-a-real-capture-name"); got != Unknown {
		t.Errorf("ParseHighlight(unrecognised) = %v, want Unknown", got)
	}
}

func TestHighlightOrdinalRoundTrip(t *testing.T) {
	for h := Attribute; h <= Unknown; h++ {
		if got := HighlightFromOrdinal(h.Ordinal()); got != h {
			t.Errorf("HighlightFromOrdinal(%d.Ordinal()) = %v, want %v", h, got, h)
		}
	}
}

func TestHighlightFromOrdinalOutOfRange(t *testing.T) {
	if got := HighlightFromOrdinal(9999); got != Unknown {
		t.Errorf("HighlightFromOrdinal(9999) = %v, want Unknown", got)
	}
}

func TestPropertiesMergeOverridesOnlySetFields(t *testing.T) {
	h1, h2 := Function, Comment
	base := Properties{Highlight: &h1, LocalDefinition: true}
	overlay := Properties{HighlightNonlocal: &h2}

	merged := base.Merge(overlay)

	if merged.Highlight == nil || *merged.Highlight != h1 {
		t.Errorf("expected base Highlight to survive merge, got %v", merged.Highlight)
	}
	if merged.HighlightNonlocal == nil || *merged.HighlightNonlocal != h2 {
		t.Errorf("expected overlay HighlightNonlocal to apply, got %v", merged.HighlightNonlocal)
	}
	if !merged.LocalDefinition {
		t.Errorf("expected LocalDefinition to survive merge")
	}
}
