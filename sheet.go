package highlight

import (
	"go.gopad.dev/go-syntax-highlight/internal/sheet"
	"go.gopad.dev/go-syntax-highlight/internal/treepath"
)

// SheetFormat selects the textual encoding a property sheet document is
// written in.
type SheetFormat int

const (
	SheetFormatJSON SheetFormat = iota
	SheetFormatYAML
)

// KindResolver resolves a grammar node kind name to its numeric ids, as
// implemented by language.Language.
type KindResolver = treepath.KindResolver

// LoadPropertySheet compiles a property sheet document against a
// grammar's node-kind table. The document format is a list of rules,
// each pairing a CSS-like selector (optionally comma-separated for
// alternation, with ">" for an immediate-parent combinator and
// ":match(\"regex\")"/":not-match(\"regex\")" pseudo-classes) with the
// Properties to apply wherever it matches.
func LoadPropertySheet(lang KindResolver, source []byte, format SheetFormat) (PropertySheet, error) {
	var f sheet.Format
	switch format {
	case SheetFormatJSON:
		f = sheet.FormatJSON
	case SheetFormatYAML:
		f = sheet.FormatYAML
	}
	return sheet.Compile(lang, source, f)
}
