// Package types holds the data model shared by the highlighter, the
// property sheet compiler and the tree walker. It exists so that none of
// those packages need to import each other to agree on vocabulary.
package types

// Highlight names a syntactic class assigned to a span of source text.
// The set mirrors the capture names used by tree-sitter highlight query
// packs in the wild (see the "highlights.scm" convention), plus Unknown
// for anything a property sheet names that isn't in the table.
type Highlight uint16

const (
	Attribute Highlight = iota
	Comment
	Constant
	ConstantBuiltin
	Constructor
	ConstructorBuiltin
	Embedded
	Escape
	Function
	FunctionBuiltin
	Keyword
	Number
	Operator
	Property
	PropertyBuiltin
	Punctuation
	PunctuationBracket
	PunctuationDelimiter
	PunctuationSpecial
	String
	StringSpecial
	Tag
	Type
	TypeBuiltin
	Variable
	VariableBuiltin
	VariableParameter
	Unknown
)

var highlightNames = [...]string{
	Attribute:            "attribute",
	Comment:              "comment",
	Constant:             "constant",
	ConstantBuiltin:      "constant.builtin",
	Constructor:          "constructor",
	ConstructorBuiltin:   "constructor.builtin",
	Embedded:             "embedded",
	Escape:               "escape",
	Function:             "function",
	FunctionBuiltin:      "function.builtin",
	Keyword:              "keyword",
	Number:               "number",
	Operator:             "operator",
	Property:             "property",
	PropertyBuiltin:      "property.builtin",
	Punctuation:          "punctuation",
	PunctuationBracket:   "punctuation.bracket",
	PunctuationDelimiter: "punctuation.delimiter",
	PunctuationSpecial:   "punctuation.special",
	String:               "string",
	StringSpecial:        "string.special",
	Tag:                  "tag",
	Type:                 "type",
	TypeBuiltin:          "type.builtin",
	Variable:             "variable",
	VariableBuiltin:      "variable.builtin",
	VariableParameter:    "variable.parameter",
	Unknown:              "",
}

// String renders the dot-separated capture name for h, or "" for Unknown.
func (h Highlight) String() string {
	if int(h) < len(highlightNames) {
		return highlightNames[h]
	}
	return ""
}

// ParseHighlight looks up a capture name, falling back to Unknown for
// anything not present in the table. It never fails: an unrecognised
// property sheet value degrades to Unknown rather than aborting a load.
func ParseHighlight(name string) Highlight {
	for i, n := range highlightNames {
		if i != int(Unknown) && n == name {
			return Highlight(i)
		}
	}
	return Unknown
}

// Ordinal returns the stable numeric identity of h, suitable for
// persisting alongside cached parse trees where string names would be
// wasteful to re-resolve on every load.
func (h Highlight) Ordinal() uint16 {
	return uint16(h)
}

// HighlightFromOrdinal is the inverse of Ordinal. An ordinal outside the
// known table yields Unknown rather than panicking, since ordinals may
// be read back from a cache written by a future version of this table.
func HighlightFromOrdinal(ordinal uint16) Highlight {
	if int(ordinal) < len(highlightNames) {
		return Highlight(ordinal)
	}
	return Unknown
}
