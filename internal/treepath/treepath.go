// Package treepath turns the nested call-form tree path expressions a
// property sheet author writes ("children().child(1, \"field\")") into a
// flat list of types.TreeStep, and executes a flattened path against a
// concrete syntax tree.
//
// Grounded on the `flatten_tree_path`, `parse_args`, `process_tree_step`
// and `nodes_for_tree_path` functions of the original Rust highlighter
// (see original_source/highlight/src/lib.rs): the post-order flattening
// walk and the working-set-of-nodes execution model are ported directly,
// since tree-sitter's Go bindings expose an equivalent node API.
package treepath

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"go.gopad.dev/go-syntax-highlight/types"
)

// KindResolver resolves a grammar node kind name to its numeric ids. A
// name can resolve to two ids (named and anonymous) in tree-sitter
// grammars that reuse a token spelling for both; ResolveKind returns every id
// that matches, same as the original implementation scanning the full
// node-kind table.
type KindResolver interface {
	ResolveKind(name string) []uint16
}

// Expr is the nested call-form AST of a tree path expression, as decoded
// from a property sheet's JSON or YAML representation before flattening.
// This is the "args" shape: Name is "this", "child", "children" or
// "next"; Receiver is the expression the call is made on (nil for "this");
// Args are the trailing string/number literals.
type Expr struct {
	Name     string
	Receiver *Expr
	Args     []Arg
}

// Arg is one trailing argument to a tree path call: either a node kind
// name (String) or a child index (Number). Exactly one of the two is set.
type Arg struct {
	String *string
	Number *int
}

// Flatten converts a nested tree path expression into the left-to-right
// step list the walker executes. "this" contributes no step; every other
// call contributes exactly one step, appended after its receiver's steps
// (a post-order walk, matching flatten_tree_path's recursion order).
func Flatten(e *Expr, resolver KindResolver) ([]types.TreeStep, error) {
	if e == nil || e.Name == "this" {
		return nil, nil
	}

	steps, err := Flatten(e.Receiver, resolver)
	if err != nil {
		return nil, err
	}

	step, err := parseArgs(e.Name, e.Args, resolver)
	if err != nil {
		return nil, err
	}
	return append(steps, step), nil
}

func parseArgs(name string, args []Arg, resolver KindResolver) (types.TreeStep, error) {
	var (
		index    *int
		kinds    []uint16
		kindSpec []string
	)

	for _, a := range args {
		switch {
		case a.Number != nil:
			index = a.Number
		case a.String != nil:
			kindSpec = append(kindSpec, *a.String)
		default:
			return types.TreeStep{}, fmt.Errorf("malformed argument to %q()", name)
		}
	}

	for _, kind := range kindSpec {
		resolved := resolver.ResolveKind(kind)
		if len(resolved) == 0 {
			return types.TreeStep{}, fmt.Errorf("non-existent node kind %q", kind)
		}
		kinds = append(kinds, resolved...)
	}

	switch name {
	case "child":
		if index == nil {
			return types.TreeStep{}, fmt.Errorf("the %q function requires an index", name)
		}
		return types.TreeStep{Kind: types.StepChild, Index: *index, Kinds: kinds}, nil
	case "children":
		return types.TreeStep{Kind: types.StepChildren, Kinds: kinds}, nil
	case "next":
		return types.TreeStep{}, fmt.Errorf("next() tree path steps are not supported")
	default:
		return types.TreeStep{}, fmt.Errorf("unknown tree path function %q", name)
	}
}

// Execute runs a flattened tree path against a single starting node and
// returns the resulting working set of nodes. Each step replaces the
// current working set with everything it selects from it, matching
// process_tree_step's drain-and-append behaviour: results accumulate
// across a step's iteration over the previous set, and only that set's
// matches survive into the next step.
func Execute(start tree_sitter.Node, steps []types.TreeStep) ([]tree_sitter.Node, error) {
	nodes := []tree_sitter.Node{start}
	for _, step := range steps {
		next, err := applyStep(step, nodes)
		if err != nil {
			return nil, err
		}
		nodes = next
	}
	return nodes, nil
}

func applyStep(step types.TreeStep, nodes []tree_sitter.Node) ([]tree_sitter.Node, error) {
	switch step.Kind {
	case types.StepChild:
		var out []tree_sitter.Node
		for _, n := range nodes {
			idx := step.Index
			if idx < 0 {
				idx = int(n.ChildCount()) + idx
			}
			if idx < 0 || idx >= int(n.ChildCount()) {
				continue
			}
			child := n.Child(uint(idx))
			if child == nil {
				continue
			}
			if keepsKind(*child, step.Kinds) {
				out = append(out, *child)
			}
		}
		return out, nil
	case types.StepChildren:
		var out []tree_sitter.Node
		for _, n := range nodes {
			count := n.ChildCount()
			for i := uint(0); i < count; i++ {
				child := n.Child(i)
				if child == nil {
					continue
				}
				if keepsKind(*child, step.Kinds) {
					out = append(out, *child)
				}
			}
		}
		return out, nil
	case types.StepNext:
		return nil, fmt.Errorf("next() tree path steps are not supported")
	default:
		return nil, fmt.Errorf("unknown tree step kind %d", step.Kind)
	}
}

func keepsKind(n tree_sitter.Node, kinds []uint16) bool {
	if len(kinds) == 0 {
		return true
	}
	id := n.KindId()
	for _, k := range kinds {
		if k == id {
			return true
		}
	}
	return false
}
