package sheet

import (
	"fmt"
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// combinator describes how one simple selector in a chain relates to the
// next node up the tree from the one it matched.
type combinator int

const (
	// descendant matches against any ancestor, not just the immediate
	// parent. splitCombinators never produces it: simple selectors are
	// joined only by ">", and whitespace between them is not a
	// combinator.
	descendant combinator = iota
	// child matches only against the immediate parent, CSS's ">".
	child
)

type simpleSelector struct {
	kind     string // "" matches any kind
	match    *regexp.Regexp
	notMatch *regexp.Regexp
}

// chain is one alternative of a (possibly comma-separated) selector: a
// rightmost simple selector paired with zero or more ancestor selectors,
// each joined to the one before it by a combinator.
type chain struct {
	selectors   []simpleSelector // selectors[0] matches the node itself
	combinators []combinator     // len(combinators) == len(selectors)-1, combinators[i] joins selectors[i] to selectors[i+1]
}

func (c chain) matches(node tree_sitter.Node, source []byte) bool {
	if !c.selectors[0].matches(node, source) {
		return false
	}

	cur := node
	for i := 1; i < len(c.selectors); i++ {
		switch c.combinators[i-1] {
		case child:
			parent := cur.Parent()
			if parent == nil || !c.selectors[i].matches(*parent, source) {
				return false
			}
			cur = *parent
		default: // descendant
			found := false
			for {
				parent := cur.Parent()
				if parent == nil {
					break
				}
				cur = *parent
				if c.selectors[i].matches(cur, source) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (s simpleSelector) matches(node tree_sitter.Node, source []byte) bool {
	if s.kind != "" && node.Kind() != s.kind {
		return false
	}
	if s.match != nil || s.notMatch != nil {
		text := node.Utf8Text(source)
		if s.match != nil && !s.match.MatchString(text) {
			return false
		}
		if s.notMatch != nil && s.notMatch.MatchString(text) {
			return false
		}
	}
	return true
}

// parseSelector compiles a single comma-free selector string such as
// `function_declaration > identifier:match("^[A-Z]")` into a chain,
// rightmost simple selector first.
func parseSelector(src string) (chain, error) {
	fields := splitCombinators(src)
	if len(fields) == 0 {
		return chain{}, fmt.Errorf("empty selector")
	}

	var c chain
	for i, f := range fields {
		sel, err := parseSimpleSelector(strings.TrimSpace(f.text))
		if err != nil {
			return chain{}, err
		}
		c.selectors = append(c.selectors, sel)
		if i > 0 {
			c.combinators = append(c.combinators, f.combinator)
		}
	}

	// The selector is written left-to-right from outermost ancestor to
	// the node itself; matching walks from the node outward, so reverse
	// both slices once here.
	for l, r := 0, len(c.selectors)-1; l < r; l, r = l+1, r-1 {
		c.selectors[l], c.selectors[r] = c.selectors[r], c.selectors[l]
	}
	for l, r := 0, len(c.combinators)-1; l < r; l, r = l+1, r-1 {
		c.combinators[l], c.combinators[r] = c.combinators[r], c.combinators[l]
	}

	return c, nil
}

type combinatorField struct {
	text       string
	combinator combinator // the combinator joining this field to the PREVIOUS one; unused for field 0
}

func splitCombinators(src string) []combinatorField {
	var fields []combinatorField
	next := combinator(descendant)
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '>' {
			fields = append(fields, combinatorField{text: src[start:i], combinator: next})
			next = child
			start = i + 1
		}
	}
	fields = append(fields, combinatorField{text: src[start:], combinator: next})
	return fields
}

func parseSimpleSelector(src string) (simpleSelector, error) {
	parts := strings.Split(src, ":")
	sel := simpleSelector{}
	if parts[0] != "" && parts[0] != "*" {
		sel.kind = parts[0]
	}

	for _, pseudo := range parts[1:] {
		name, arg, err := parsePseudoClass(pseudo)
		if err != nil {
			return simpleSelector{}, err
		}
		switch name {
		case "match":
			re, err := regexp.Compile(arg)
			if err != nil {
				return simpleSelector{}, fmt.Errorf("invalid regex in :match(): %w", err)
			}
			sel.match = re
		case "not-match":
			re, err := regexp.Compile(arg)
			if err != nil {
				return simpleSelector{}, fmt.Errorf("invalid regex in :not-match(): %w", err)
			}
			sel.notMatch = re
		default:
			return simpleSelector{}, fmt.Errorf("unknown pseudo-class %q", name)
		}
	}

	return sel, nil
}

func parsePseudoClass(src string) (name, arg string, err error) {
	open := strings.IndexByte(src, '(')
	if open < 0 || !strings.HasSuffix(src, ")") {
		return "", "", fmt.Errorf("malformed pseudo-class %q", src)
	}
	name = src[:open]
	raw := src[open+1 : len(src)-1]
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, `"`)
	raw = strings.TrimSuffix(raw, `"`)
	return name, raw, nil
}

// parseSelectorList splits a comma-separated group of selectors (CSS-style
// alternation) and compiles each one.
func parseSelectorList(src string) ([]chain, error) {
	var chains []chain
	for _, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := parseSelector(part)
		if err != nil {
			return nil, err
		}
		chains = append(chains, c)
	}
	return chains, nil
}
