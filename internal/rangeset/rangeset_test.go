package rangeset_test

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"go.gopad.dev/go-syntax-highlight/internal/rangeset"
	"go.gopad.dev/go-syntax-highlight/language"
)

func parseSample(t *testing.T) (tree_sitter.Node, []byte) {
	t.Helper()
	source, err := os.ReadFile("../../testdata/sample.go")
	require.NoError(t, err)

	lang := language.New("go", tree_sitter_go.Language())
	parser := tree_sitter.NewParser()
	require.NoError(t, parser.SetLanguage(lang.Lang))

	tree := parser.ParseCtx(context.Background(), source, nil)
	require.NotNil(t, tree)

	return tree.RootNode(), source
}

func fullSourceRange() tree_sitter.Range {
	return tree_sitter.Range{
		StartByte:  0,
		EndByte:    math.MaxUint32,
		StartPoint: tree_sitter.Point{Row: 0, Column: 0},
		EndPoint:   tree_sitter.Point{Row: math.MaxUint32, Column: math.MaxUint32},
	}
}

func TestIntersectExcludingChildrenCarvesOutSubranges(t *testing.T) {
	root, _ := parseSample(t)

	ranges := rangeset.Intersect([]tree_sitter.Range{fullSourceRange()}, []tree_sitter.Node{root}, false)
	require.NotEmpty(t, ranges)

	// None of the returned ranges should cover a full top-level child,
	// since excluding children means each child is carved out.
	count := root.ChildCount()
	for i := uint(0); i < count; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		for _, r := range ranges {
			covered := r.StartByte <= child.StartByte() && child.EndByte() <= r.EndByte
			require.False(t, covered, "child range should have been excluded")
		}
	}
}

func TestIntersectIncludingChildrenKeepsWholeNode(t *testing.T) {
	root, _ := parseSample(t)

	ranges := rangeset.Intersect([]tree_sitter.Range{fullSourceRange()}, []tree_sitter.Node{root}, true)
	require.Len(t, ranges, 1)
	require.Equal(t, uint(0), ranges[0].StartByte)
}

func TestIntersectEmptyParentRangesYieldsNothing(t *testing.T) {
	root, _ := parseSample(t)
	ranges := rangeset.Intersect(nil, []tree_sitter.Node{root}, true)
	require.Empty(t, ranges)
}
