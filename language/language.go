// Package language wraps a tree-sitter grammar with the node-kind lookup
// helpers the property sheet compiler and tree path walker need, in place
// of the teacher's highlights/injections/locals query bytes — this module
// resolves properties from a property sheet instead of compiled queries.
package language

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language pairs a grammar name (used to route injections and as the
// LanguageName a caller sees in rendered output) with its compiled
// tree-sitter grammar.
type Language struct {
	Name string
	Lang *tree_sitter.Language
}

// New wraps a grammar exposed by a tree-sitter-<lang> package, whose
// Language() function returns an unsafe.Pointer to the underlying
// TSLanguage, under the given name.
func New(name string, ptr unsafe.Pointer) Language {
	return Language{
		Name: name,
		Lang: tree_sitter.NewLanguage(ptr),
	}
}

// ResolveKind returns every node kind id whose spelling matches name, both
// the named and anonymous interpretations. tree-sitter grammars sometimes
// use the same token text for both (e.g. a keyword that is also valid as
// a bare identifier in another rule), so a property sheet selector that
// names a kind by its string can match either.
func (l Language) ResolveKind(name string) []uint16 {
	var ids []uint16
	if id := l.Lang.IdForNodeKind(name, true); id != 0 {
		ids = append(ids, id)
	}
	if id := l.Lang.IdForNodeKind(name, false); id != 0 {
		ids = append(ids, id)
	}
	return ids
}

// KindForId is the inverse of ResolveKind for a single id: the kind name
// the grammar assigned it, or "" if id is out of range.
func (l Language) KindForId(id uint16) string {
	return l.Lang.NodeKindForId(id)
}

// IsNamedKind reports whether id identifies a named grammar rule, as
// opposed to an anonymous token kind.
func (l Language) IsNamedKind(id uint16) bool {
	return l.Lang.NodeKindIsNamed(id)
}
