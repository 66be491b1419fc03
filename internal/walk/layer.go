// Package walk implements the per-layer depth-first tree walker that
// drives highlight event generation: one Layer per concrete syntax tree
// (the root document, plus one per active language injection), each
// tracking its own cursor position, local-variable scope stack and
// resolved node properties.
//
// Grounded on the Layer type of original_source/highlight/src/lib.rs —
// enterNode/leaveNode/Advance are a direct port of its enter_node,
// leave_node and advance methods. Go's garbage collector makes the
// self-referential Tree/cursor trick that file needs (an unsafe
// transmute to stretch the tree's borrow past the layer's own lifetime)
// unnecessary: a Layer simply owns its *tree_sitter.Tree outright.
package walk

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"go.gopad.dev/go-syntax-highlight/types"
)

// LocalDef is one name bound within a Scope, carried with the highlight
// class it should resolve to wherever it is referenced.
type LocalDef struct {
	Name      string
	Highlight types.Highlight
}

// Scope is one level of the local-variable binding stack. Inherits
// controls whether a reference that misses every definition in this
// scope keeps looking further up the stack, or stops here.
type Scope struct {
	Inherits  bool
	LocalDefs []LocalDef
}

// insert adds (name, highlight) to the scope if name is not already
// bound here. The first definition of a name within a scope wins; a
// shadowing redeclaration in the same scope is silently ignored, matching
// how a tree-sitter locals query can't tell a redeclaration from a
// re-assignment without deeper analysis.
func (s *Scope) insert(name string, h types.Highlight) {
	i := sort.Search(len(s.LocalDefs), func(i int) bool { return s.LocalDefs[i].Name >= name })
	if i < len(s.LocalDefs) && s.LocalDefs[i].Name == name {
		return
	}
	s.LocalDefs = append(s.LocalDefs, LocalDef{})
	copy(s.LocalDefs[i+1:], s.LocalDefs[i:])
	s.LocalDefs[i] = LocalDef{Name: name, Highlight: h}
}

func (s *Scope) lookup(name string) (types.Highlight, bool) {
	i := sort.Search(len(s.LocalDefs), func(i int) bool { return s.LocalDefs[i].Name >= name })
	if i < len(s.LocalDefs) && s.LocalDefs[i].Name == name {
		return s.LocalDefs[i].Highlight, true
	}
	return types.Unknown, false
}

// Layer is a single concrete syntax tree under active traversal: the root
// document layer, or one injected layer per embedded-language region.
type Layer struct {
	Tree   *tree_sitter.Tree
	Sheet  types.PropertySheet
	Source []byte

	LanguageName string
	Ranges       []tree_sitter.Range
	Depth        int
	Opaque       bool

	cursor tree_sitter.TreeCursor

	AtNodeEnd bool
	scopes    []Scope

	// Properties are the resolved settings for the node currently under
	// the cursor, recomputed by enterNode and again when Advance steps
	// back up to a parent's node-end.
	Properties types.Properties
	// LocalHighlight is set by enterNode when the current node is a
	// local definition or a reference that resolved against the scope
	// stack. It is cleared at the start of every Advance.
	LocalHighlight *types.Highlight
}

// New constructs a Layer positioned at tree's root node and immediately
// resolves the root node's properties, so the layer is ready for
// Highlighter to read its first Offset/Properties without an extra step.
func New(source []byte, tree *tree_sitter.Tree, sheet types.PropertySheet, languageName string, ranges []tree_sitter.Range, depth int, opaque bool) *Layer {
	l := &Layer{
		Tree:         tree,
		Sheet:        sheet,
		Source:       source,
		LanguageName: languageName,
		Ranges:       ranges,
		Depth:        depth,
		Opaque:       opaque,
		cursor:       tree.RootNode().Walk(),
		scopes:       []Scope{{Inherits: false}},
	}
	l.enterNode()
	return l
}

// Node returns the node currently under the cursor.
func (l *Layer) Node() tree_sitter.Node {
	return l.cursor.Node()
}

// Offset is the byte position this layer's state machine is currently
// positioned at: the node's start byte on entry, its end byte once every
// child has been visited.
func (l *Layer) Offset() uint {
	n := l.Node()
	if l.AtNodeEnd {
		return n.EndByte()
	}
	return n.StartByte()
}

// Advance moves the cursor to the next position in the depth-first walk
// and reports whether one exists. A false return means the layer's tree
// has been fully visited and the layer should be retired.
func (l *Layer) Advance() bool {
	l.LocalHighlight = nil

	if l.AtNodeEnd {
		l.leaveNode()
		if l.cursor.GotoNextSibling() {
			l.AtNodeEnd = false
			l.enterNode()
			return true
		}
		if l.cursor.GotoParent() {
			// The cursor now sits on the parent's own node-end, which
			// enterNode was never called for (it was entered long before
			// this child was reached). Refresh Properties against it
			// directly so leaveNode and every other reader see the
			// parent's own settings instead of this child's.
			l.Properties = l.Sheet.PropertiesFor(l.Node(), l.Source)
			return true
		}
		return false
	}

	if l.cursor.GotoFirstChild() {
		l.enterNode()
		return true
	}
	l.AtNodeEnd = true
	return true
}

func (l *Layer) enterNode() {
	node := l.Node()
	props := l.Sheet.PropertiesFor(node, l.Source)
	l.Properties = props

	needText := props.LocalDefinition || props.LocalReference
	var text string
	if needText {
		text = node.Utf8Text(l.Source)
	}

	switch {
	case props.LocalDefinition && text != "" && props.Highlight != nil:
		h := *props.Highlight
		l.LocalHighlight = &h
		l.scopes[len(l.scopes)-1].insert(text, h)
	case props.LocalReference && text != "":
		for i := len(l.scopes) - 1; i >= 0; i-- {
			scope := &l.scopes[i]
			if h, ok := scope.lookup(text); ok {
				local := h
				l.LocalHighlight = &local
				break
			}
			if !scope.Inherits {
				break
			}
		}
	}

	if props.LocalScope != nil {
		l.scopes = append(l.scopes, Scope{Inherits: *props.LocalScope})
	}
}

func (l *Layer) leaveNode() {
	props := l.Sheet.PropertiesFor(l.Node(), l.Source)
	if props.LocalScope != nil && len(l.scopes) > 1 {
		l.scopes = l.scopes[:len(l.scopes)-1]
	}
}

// Less orders two layers the way the merged Highlighter walk needs: by
// byte offset first, then end-of-node events before start-of-node events
// at the same offset (so a closing scope is emitted before a sibling's
// opening one), then by depth so shallower layers are visited first when
// everything else ties.
func Less(a, b *Layer) bool {
	ao, bo := a.Offset(), b.Offset()
	if ao != bo {
		return ao < bo
	}
	if a.AtNodeEnd != b.AtNodeEnd {
		return a.AtNodeEnd
	}
	return a.Depth < b.Depth
}
