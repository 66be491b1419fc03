package types

// TreeStepKind discriminates the three ways a TreeStep can move through a
// concrete syntax tree, mirroring the "child()", "children()" and "next()"
// selector functions a property sheet author can write in a tree-path
// expression.
type TreeStepKind int

const (
	// StepChild selects the Index-th child of each node in the working
	// set (negative indexes count from the end), optionally filtered to
	// the named Kinds.
	StepChild TreeStepKind = iota
	// StepChildren selects every child of each node in the working set,
	// optionally filtered to the named Kinds.
	StepChildren
	// StepNext selects the next sibling of each node in the working set.
	// No grammar in this module's test corpus exercises it;
	// internal/treepath rejects it when a tree path is flattened, and
	// Execute returns an error for it, rather than silently miscomputing
	// a result.
	StepNext
)

// TreeStep is one move of a tree-path expression such as
// `child(1).children("field_identifier")`. A path is a flattened,
// left-to-right list of these, executed in order starting from a single
// node.
type TreeStep struct {
	Kind TreeStepKind
	// Index is only meaningful for StepChild. It may be negative to
	// count backwards from the end of the child list.
	Index int
	// Kinds restricts the step to nodes of these grammar-assigned kind
	// ids. A nil slice means "no restriction".
	Kinds []uint16
}

// InjectionLanguageKind discriminates how an Injection names the language
// of the content it selects.
type InjectionLanguageKind int

const (
	// InjectionLanguageLiteral names the language directly, e.g. "html".
	InjectionLanguageLiteral InjectionLanguageKind = iota
	// InjectionLanguageTreePath reads the language name from the text of
	// a node reached by walking a tree path, e.g. the name argument of a
	// `sh` heredoc.
	InjectionLanguageTreePath
)

// InjectionLanguage names the language an Injection's content should be
// parsed as.
type InjectionLanguage struct {
	Kind    InjectionLanguageKind
	Literal string
	Path    []TreeStep
}

// Injection describes a region of a node's subtree that should be parsed
// and highlighted as a different language entirely — the mechanism behind
// embedded HTML inside a template language, or a shell heredoc inside a
// Makefile.
type Injection struct {
	Language         InjectionLanguage
	Content          []TreeStep
	IncludesChildren bool
}

// Properties is the resolved, per-node-kind settings a property sheet
// assigns. Every field is optional; a node that matches no selector gets
// the zero value, which carries no highlight and opens no scope.
type Properties struct {
	Highlight         *Highlight
	HighlightNonlocal *Highlight
	Injections        []Injection
	LocalScope        *bool
	LocalDefinition   bool
	LocalReference    bool
}

// Merge layers other on top of p, following CSS-style cascade rules: a
// field other sets overrides the same field in p, and everything else is
// left untouched. It returns the merged result and does not mutate p.
func (p Properties) Merge(other Properties) Properties {
	merged := p
	if other.Highlight != nil {
		merged.Highlight = other.Highlight
	}
	if other.HighlightNonlocal != nil {
		merged.HighlightNonlocal = other.HighlightNonlocal
	}
	if len(other.Injections) > 0 {
		merged.Injections = other.Injections
	}
	if other.LocalScope != nil {
		merged.LocalScope = other.LocalScope
	}
	if other.LocalDefinition {
		merged.LocalDefinition = true
	}
	if other.LocalReference {
		merged.LocalReference = true
	}
	return merged
}
