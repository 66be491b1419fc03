package types

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// PropertySheet resolves the Properties that apply to a node. A compiled
// property sheet (internal/sheet.Sheet) implements this; the walker only
// depends on the interface so it never needs to import the compiler
// package, and tests can substitute a fake sheet without parsing JSON.
type PropertySheet interface {
	PropertiesFor(node tree_sitter.Node, source []byte) Properties
}

// LanguageConfig bundles everything a new injected layer needs: the
// grammar to parse it with and the property sheet to walk it with.
type LanguageConfig struct {
	Name     string
	Language *tree_sitter.Language
	Sheet    PropertySheet
}

// InjectionCallback resolves a language name (as produced by an
// Injection's InjectionLanguage) to the grammar and property sheet that
// should parse and highlight the injected content. A nil return means
// "skip this injection": no layer is added, and the region keeps
// whatever highlighting the parent layer gives it.
type InjectionCallback func(languageName string) *LanguageConfig

// AttributeCallback renders the HTML attributes (e.g. `class="..."`) that
// should decorate a span opened for the given highlight. HighlightHTML
// passes the root language's name as languageName for every span,
// including spans opened by injected layers.
type AttributeCallback func(h Highlight, languageName string) string
