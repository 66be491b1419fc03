package sheet

import (
	"encoding/json"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"gopkg.in/yaml.v3"

	"go.gopad.dev/go-syntax-highlight/internal/treepath"
	"go.gopad.dev/go-syntax-highlight/types"
)

// Format selects the textual encoding a property sheet document is
// written in. Both decode to the same internal representation; a sheet
// authored for one language's grammar is otherwise indistinguishable
// once compiled.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Sheet is a compiled property sheet: an ordered list of selector/
// properties rules. Selector kind names are compared with node.Kind() as
// strings on every lookup; the grammar is used only at compile time, to
// resolve kind names inside injection tree paths.
type Sheet struct {
	rules []rule
}

type rule struct {
	chains     []chain
	properties types.Properties
}

// Compile parses a property sheet document (JSON or YAML, per format)
// against lang's node-kind table and returns a ready-to-use Sheet.
func Compile(lang treepath.KindResolver, source []byte, format Format) (*Sheet, error) {
	var doc sheetDoc

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(source, &doc); err != nil {
			return nil, types.NewPropertySheetError(types.ErrInvalidJSON, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(source, &doc); err != nil {
			return nil, types.NewPropertySheetError(types.ErrInvalidJSON, err)
		}
	default:
		return nil, types.NewPropertySheetError(types.ErrInvalidFormat, fmt.Errorf("unknown format %d", format))
	}

	rules := make([]rule, 0, len(doc))
	for _, entry := range doc {
		chains, err := parseSelectorList(entry.Selector)
		if err != nil {
			return nil, types.NewPropertySheetError(types.ErrInvalidFormat, err)
		}
		if len(chains) == 0 {
			return nil, types.NewPropertySheetError(types.ErrInvalidFormat, fmt.Errorf("rule has no selectors"))
		}

		props, err := propertiesFromDoc(entry.Properties, lang)
		if err != nil {
			return nil, types.NewPropertySheetError(types.ErrInvalidFormat, err)
		}

		rules = append(rules, rule{chains: chains, properties: props})
	}

	return &Sheet{rules: rules}, nil
}

// PropertiesFor implements types.PropertySheet.
func (s *Sheet) PropertiesFor(node tree_sitter.Node, source []byte) types.Properties {
	var result types.Properties
	for _, r := range s.rules {
		for _, c := range r.chains {
			if c.matches(node, source) {
				result = result.Merge(r.properties)
				break
			}
		}
	}
	return result
}

func propertiesFromDoc(doc propertiesDoc, lang treepath.KindResolver) (types.Properties, error) {
	var props types.Properties

	if doc.Highlight != "" {
		h := types.ParseHighlight(doc.Highlight)
		props.Highlight = &h
	}
	if doc.HighlightNonlocal != "" {
		h := types.ParseHighlight(doc.HighlightNonlocal)
		props.HighlightNonlocal = &h
	}
	if doc.LocalScope {
		inherits := doc.LocalScopeInherit
		props.LocalScope = &inherits
	}
	props.LocalDefinition = doc.LocalDefinition
	props.LocalReference = doc.LocalReference

	hasLanguage := len(doc.InjectionLanguage) > 0
	hasContent := len(doc.InjectionContent) > 0
	if hasLanguage != hasContent {
		if hasLanguage {
			return types.Properties{}, fmt.Errorf("must specify injection-content along with injection-language")
		}
		return types.Properties{}, fmt.Errorf("must specify injection-language along with injection-content")
	}
	if !hasLanguage {
		return props, nil
	}
	if len(doc.InjectionLanguage) != len(doc.InjectionContent) {
		return types.Properties{}, fmt.Errorf("mismatch: got %d injection-language values but %d injection-content values", len(doc.InjectionLanguage), len(doc.InjectionContent))
	}

	includesChildren := doc.InjectionIncludesChildren
	if len(includesChildren) == 0 {
		includesChildren = []bool{false}
	}
	if len(includesChildren) == 1 && len(doc.InjectionLanguage) > 1 {
		broadcast := make([]bool, len(doc.InjectionLanguage))
		for i := range broadcast {
			broadcast[i] = includesChildren[0]
		}
		includesChildren = broadcast
	}
	if len(includesChildren) != len(doc.InjectionLanguage) {
		return types.Properties{}, fmt.Errorf("mismatch: got %d injection-language values but %d injection-includes-children values", len(doc.InjectionLanguage), len(includesChildren))
	}

	injections := make([]types.Injection, 0, len(doc.InjectionLanguage))
	for i, langExpr := range doc.InjectionLanguage {
		contentExpr := doc.InjectionContent[i]

		language, err := compileInjectionLanguage(langExpr, lang)
		if err != nil {
			return types.Properties{}, err
		}
		content, err := compileTreePath(contentExpr, lang)
		if err != nil {
			return types.Properties{}, err
		}

		injections = append(injections, types.Injection{
			Language:         language,
			Content:          content,
			IncludesChildren: includesChildren[i],
		})
	}
	props.Injections = injections

	return props, nil
}

func compileInjectionLanguage(expr string, lang treepath.KindResolver) (types.InjectionLanguage, error) {
	if !looksLikeTreePath(expr) {
		return types.InjectionLanguage{Kind: types.InjectionLanguageLiteral, Literal: expr}, nil
	}
	path, err := compileTreePath(expr, lang)
	if err != nil {
		return types.InjectionLanguage{}, err
	}
	return types.InjectionLanguage{Kind: types.InjectionLanguageTreePath, Path: path}, nil
}

func compileTreePath(expr string, lang treepath.KindResolver) ([]types.TreeStep, error) {
	parsed, err := parseTreePath(expr)
	if err != nil {
		return nil, err
	}
	return treepath.Flatten(parsed, lang)
}

// looksLikeTreePath distinguishes a literal language name ("html") from a
// tree path expression ("children().child(0)") by the presence of a call
// parenthesis, which is never legal in a bare language name.
func looksLikeTreePath(s string) bool {
	for _, c := range s {
		if c == '(' {
			return true
		}
	}
	return false
}
