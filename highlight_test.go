package highlight_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	highlightlib "go.gopad.dev/go-syntax-highlight"
	"go.gopad.dev/go-syntax-highlight/language"
)

func loadConfig(t *testing.T) (highlightlib.LanguageConfig, []byte) {
	t.Helper()
	source, err := os.ReadFile("testdata/sample.go")
	require.NoError(t, err)
	sheetSource, err := os.ReadFile("testdata/sheet.yaml")
	require.NoError(t, err)

	lang := language.New("go", tree_sitter_go.Language())
	sheet, err := highlightlib.LoadPropertySheet(lang, sheetSource, highlightlib.SheetFormatYAML)
	require.NoError(t, err)

	return highlightlib.LanguageConfig{Name: lang.Name, Language: lang.Lang, Sheet: sheet}, source
}

func TestHighlightEventsReconstructSource(t *testing.T) {
	cfg, source := loadConfig(t)

	h := highlightlib.New()
	var rebuilt strings.Builder
	depth := 0

	for event, err := range h.Highlight(context.Background(), cfg, highlightlib.FromBytes(source), nil, nil) {
		require.NoError(t, err)
		switch e := event.(type) {
		case highlightlib.EventStart:
			depth++
		case highlightlib.EventEnd:
			depth--
			require.GreaterOrEqual(t, depth, 0)
		case highlightlib.EventSource:
			rebuilt.WriteString(e.Text)
		}
	}

	require.Equal(t, 0, depth, "every highlight scope must close")
	require.Equal(t, string(source), rebuilt.String())
}

func TestHighlightEmitsCommentHighlight(t *testing.T) {
	cfg, source := loadConfig(t)

	h := highlightlib.New()
	sawComment := false
	for event, err := range h.Highlight(context.Background(), cfg, highlightlib.FromBytes(source), nil, nil) {
		require.NoError(t, err)
		if start, ok := event.(highlightlib.EventStart); ok && start.Highlight == highlightlib.Comment {
			sawComment = true
		}
	}
	require.True(t, sawComment)
}

func TestHighlightCancellation(t *testing.T) {
	cfg, _ := loadConfig(t)

	// Build a source with enough nodes to cross the cancellation check
	// interval at least once.
	var big strings.Builder
	big.WriteString("package sample\n\nfunc many() {\n")
	for i := 0; i < 200; i++ {
		big.WriteString("\tvar x = 1\n")
	}
	big.WriteString("}\n")

	h := highlightlib.New()
	var cancel highlightlib.CancellationFlag
	cancel.Store(1)

	var sawErr error
	for _, err := range h.Highlight(context.Background(), cfg, highlightlib.FromBytes([]byte(big.String())), nil, &cancel) {
		if err != nil {
			sawErr = err
			break
		}
	}
	require.Error(t, sawErr)
}
