package sheet_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"go.gopad.dev/go-syntax-highlight/internal/sheet"
	"go.gopad.dev/go-syntax-highlight/language"
	"go.gopad.dev/go-syntax-highlight/types"
)

func parseSample(t *testing.T) (tree_sitter.Tree, []byte, language.Language) {
	t.Helper()
	source, err := os.ReadFile("../../testdata/sample.go")
	require.NoError(t, err)

	lang := language.New("go", tree_sitter_go.Language())
	parser := tree_sitter.NewParser()
	require.NoError(t, parser.SetLanguage(lang.Lang))

	tree := parser.ParseCtx(context.Background(), source, nil)
	require.NotNil(t, tree)

	return *tree, source, lang
}

func TestCompileAndMatchSimpleKindSelector(t *testing.T) {
	tree, source, lang := parseSample(t)

	doc := `
- selector: comment
  properties:
    highlight: comment
`
	s, err := sheet.Compile(lang, []byte(doc), sheet.FormatYAML)
	require.NoError(t, err)

	root := tree.RootNode()
	found := false
	walkAll(root, func(n tree_sitter.Node) {
		if n.Kind() == "comment" {
			props := s.PropertiesFor(n, source)
			require.NotNil(t, props.Highlight)
			require.Equal(t, types.Comment, *props.Highlight)
			found = true
		}
	})
	require.True(t, found, "expected at least one comment node in sample.go")
}

func TestCompileChildCombinator(t *testing.T) {
	tree, source, lang := parseSample(t)

	doc := `
- selector: "function_declaration > identifier"
  properties:
    highlight: function
`
	s, err := sheet.Compile(lang, []byte(doc), sheet.FormatYAML)
	require.NoError(t, err)

	root := tree.RootNode()
	matchedAny := false
	walkAll(root, func(n tree_sitter.Node) {
		if n.Kind() != "identifier" {
			return
		}
		parent := n.Parent()
		props := s.PropertiesFor(n, source)
		if parent != nil && parent.Kind() == "function_declaration" {
			require.NotNil(t, props.Highlight)
			require.Equal(t, types.Function, *props.Highlight)
			matchedAny = true
		} else {
			require.Nil(t, props.Highlight)
		}
	})
	require.True(t, matchedAny)
}

func TestCompileRejectsMismatchedInjectionLengths(t *testing.T) {
	_, _, lang := parseSample(t)

	doc := `
- selector: "call_expression"
  properties:
    injection-language: ["html", "css"]
    injection-content: ["children()"]
`
	_, err := sheet.Compile(lang, []byte(doc), sheet.FormatYAML)
	require.Error(t, err)
}

func TestCompileRejectsInjectionLanguageWithoutContent(t *testing.T) {
	_, _, lang := parseSample(t)

	doc := `
- selector: "call_expression"
  properties:
    injection-language: "html"
`
	_, err := sheet.Compile(lang, []byte(doc), sheet.FormatYAML)
	require.Error(t, err)
}

func TestCompileRejectsInvalidJSON(t *testing.T) {
	_, _, lang := parseSample(t)
	_, err := sheet.Compile(lang, []byte("{not valid"), sheet.FormatJSON)
	require.Error(t, err)
	var psErr *types.PropertySheetError
	require.ErrorAs(t, err, &psErr)
}

func walkAll(n tree_sitter.Node, fn func(tree_sitter.Node)) {
	fn(n)
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		walkAll(*child, fn)
	}
}
