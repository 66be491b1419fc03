package treepath_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"go.gopad.dev/go-syntax-highlight/internal/treepath"
	"go.gopad.dev/go-syntax-highlight/language"
	"go.gopad.dev/go-syntax-highlight/types"
)

func parseSample(t *testing.T) (tree_sitter.Node, []byte, language.Language) {
	t.Helper()
	source, err := os.ReadFile("../../testdata/sample.go")
	require.NoError(t, err)

	lang := language.New("go", tree_sitter_go.Language())
	parser := tree_sitter.NewParser()
	require.NoError(t, parser.SetLanguage(lang.Lang))

	tree := parser.ParseCtx(context.Background(), source, nil)
	require.NotNil(t, tree)

	return tree.RootNode(), source, lang
}

func TestFlattenThisYieldsNoSteps(t *testing.T) {
	_, _, lang := parseSample(t)
	steps, err := treepath.Flatten(&treepath.Expr{Name: "this"}, lang)
	require.NoError(t, err)
	require.Empty(t, steps)
}

func TestFlattenAndExecuteChildren(t *testing.T) {
	root, _, lang := parseSample(t)

	expr := &treepath.Expr{Name: "children"}
	steps, err := treepath.Flatten(expr, lang)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Equal(t, types.StepChildren, steps[0].Kind)

	nodes, err := treepath.Execute(root, steps)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
}

func TestFlattenChildRequiresIndex(t *testing.T) {
	_, _, lang := parseSample(t)
	expr := &treepath.Expr{Name: "child"}
	_, err := treepath.Flatten(expr, lang)
	require.Error(t, err)
}

func TestFlattenRejectsNonExistentKind(t *testing.T) {
	_, _, lang := parseSample(t)
	zero := 0
	bogus := "definitely_not_a_real_node_kind"
	expr := &treepath.Expr{Name: "child", Args: []treepath.Arg{{Number: &zero}, {String: &bogus}}}
	_, err := treepath.Flatten(expr, lang)
	require.Error(t, err)
}

func TestExecuteChainedChildSteps(t *testing.T) {
	root, _, lang := parseSample(t)

	// package_clause is the first top-level child of source_file.
	zero := 0
	expr := &treepath.Expr{
		Name: "child",
		Receiver: &treepath.Expr{
			Name: "children",
		},
		Args: []treepath.Arg{{Number: &zero}},
	}
	steps, err := treepath.Flatten(expr, lang)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	nodes, err := treepath.Execute(root, steps)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
}

func TestNextStepIsRejected(t *testing.T) {
	root, _, _ := parseSample(t)
	_, err := treepath.Execute(root, []types.TreeStep{{Kind: types.StepNext}})
	require.Error(t, err)
}
