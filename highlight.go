package highlight

import (
	"context"
	"iter"
	"sync/atomic"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"go.gopad.dev/go-syntax-highlight/types"
)

// Re-exported so callers of this package rarely need to import the types
// package directly.
type (
	Highlight         = types.Highlight
	Event             = types.Event
	EventSource       = types.EventSource
	EventStart        = types.EventStart
	EventEnd          = types.EventEnd
	Properties        = types.Properties
	Injection         = types.Injection
	InjectionLanguage = types.InjectionLanguage
	TreeStep          = types.TreeStep
	PropertySheet     = types.PropertySheet
	InjectionCallback = types.InjectionCallback
	AttributeCallback = types.AttributeCallback
	LanguageConfig    = types.LanguageConfig
	Error             = types.Error
	PropertySheetError = types.PropertySheetError
)

const (
	Attribute            = types.Attribute
	Comment              = types.Comment
	Constant             = types.Constant
	ConstantBuiltin      = types.ConstantBuiltin
	Constructor          = types.Constructor
	ConstructorBuiltin   = types.ConstructorBuiltin
	Embedded             = types.Embedded
	Escape               = types.Escape
	Function             = types.Function
	FunctionBuiltin      = types.FunctionBuiltin
	Keyword              = types.Keyword
	Number               = types.Number
	Operator             = types.Operator
	Property             = types.Property
	PropertyBuiltin      = types.PropertyBuiltin
	Punctuation          = types.Punctuation
	PunctuationBracket   = types.PunctuationBracket
	PunctuationDelimiter = types.PunctuationDelimiter
	PunctuationSpecial   = types.PunctuationSpecial
	String               = types.String
	StringSpecial        = types.StringSpecial
	Tag                  = types.Tag
	Type                 = types.Type
	TypeBuiltin          = types.TypeBuiltin
	Variable             = types.Variable
	VariableBuiltin      = types.VariableBuiltin
	VariableParameter    = types.VariableParameter
	Unknown              = types.Unknown
)

// CancellationFlag is a word a caller can set from another goroutine to
// ask an in-progress highlight run to stop early. The layer walk polls it
// periodically; nil means "never cancel". The parser does not read it:
// a parse in progress is only stopped through the context.
type CancellationFlag = atomic.Uint64

// Highlighter walks one or more concrete syntax trees and emits a merged
// stream of highlight events. It owns a single reusable tree-sitter
// parser; create one per goroutine that highlights concurrently.
type Highlighter struct {
	parser *tree_sitter.Parser
}

// New returns a ready-to-use Highlighter.
func New() *Highlighter {
	return &Highlighter{parser: tree_sitter.NewParser()}
}

// Highlight parses source with root's grammar, walks it alongside
// whatever injected layers its property sheet asks for, and returns the
// merged event stream as an iter.Seq2 — range over it and check the
// error on every iteration, the same convention go-tree-sitter itself
// uses for fallible iteration.
//
// injectionCallback resolves the grammar and property sheet for each
// injected language by name; pass nil if root's sheet never injects.
// cancel, if non-nil, is polled periodically so a long-running highlight
// can be aborted from another goroutine.
func (h *Highlighter) Highlight(ctx context.Context, root LanguageConfig, source Source, injectionCallback InjectionCallback, cancel *CancellationFlag) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		r, err := newRun(ctx, h.parser, root, source, injectionCallback, cancel)
		if err != nil {
			yield(nil, err)
			return
		}
		for {
			event, err, ok := r.next()
			if !ok {
				return
			}
			if !yield(event, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
