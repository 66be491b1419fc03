// Command highlight renders a source file's syntax highlighting to the
// terminal (ANSI) or to HTML, driven by a property sheet file.
//
// Grounded on the teacher's test-harness rendering code
// (highlight_test.go's ANSI style stack, html_render_test.go's
// theme-driven attribute callback), promoted here into a standalone
// command and wired to github.com/spf13/cobra the way the rest of the
// example corpus's CLI-shaped repos expose their entry points.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tree-sitter/tree-sitter-go/bindings/go"

	highlightlib "go.gopad.dev/go-syntax-highlight"
	"go.gopad.dev/go-syntax-highlight/language"
)

var ansiTheme = map[highlightlib.Highlight]string{
	highlightlib.Comment:     "\x1b[90m",
	highlightlib.String:      "\x1b[32m",
	highlightlib.Function:    "\x1b[33m",
	highlightlib.Keyword:     "\x1b[35m",
	highlightlib.Variable:    "\x1b[36m",
	highlightlib.Constant:    "\x1b[34m",
	highlightlib.Number:      "\x1b[34m",
}

const ansiReset = "\x1b[0m"

var cssTheme = map[highlightlib.Highlight]string{
	highlightlib.Comment:  "c",
	highlightlib.String:   "s",
	highlightlib.Function: "fn",
	highlightlib.Keyword:  "kw",
	highlightlib.Variable: "var",
	highlightlib.Constant: "const",
	highlightlib.Number:   "num",
}

func main() {
	var sheetPath string
	var htmlOutput bool

	root := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Render a source file's syntax highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], sheetPath, htmlOutput)
		},
	}
	root.Flags().StringVar(&sheetPath, "sheet", "", "property sheet file (YAML or JSON, by extension)")
	root.Flags().BoolVar(&htmlOutput, "html", false, "render HTML instead of ANSI terminal output")
	_ = root.MarkFlagRequired("sheet")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(path, sheetPath string, htmlOutput bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	sheetSource, err := os.ReadFile(sheetPath)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	format := highlightlib.SheetFormatYAML
	if strings.HasSuffix(sheetPath, ".json") {
		format = highlightlib.SheetFormatJSON
	}

	lang := language.New("go", tree_sitter_go.Language())
	sheet, err := highlightlib.LoadPropertySheet(lang, sheetSource, format)
	if err != nil {
		return fmt.Errorf("compile property sheet: %w", err)
	}

	cfg := highlightlib.LanguageConfig{Name: lang.Name, Language: lang.Lang, Sheet: sheet}

	if htmlOutput {
		lines, err := highlightlib.HighlightHTML(context.Background(), cfg, highlightlib.FromBytes(source), nil, nil, attributeCallback)
		if err != nil {
			return fmt.Errorf("highlight: %w", err)
		}
		for _, line := range lines {
			fmt.Print(line)
		}
		return nil
	}

	return renderANSI(cfg, source)
}

func renderANSI(cfg highlightlib.LanguageConfig, source []byte) error {
	h := highlightlib.New()
	var stack []string

	for event, err := range h.Highlight(context.Background(), cfg, highlightlib.FromBytes(source), nil, nil) {
		if err != nil {
			return fmt.Errorf("highlight: %w", err)
		}
		switch e := event.(type) {
		case highlightlib.EventStart:
			code := ansiTheme[e.Highlight]
			stack = append(stack, code)
			fmt.Print(code)
		case highlightlib.EventEnd:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			fmt.Print(ansiReset)
			for _, code := range stack {
				fmt.Print(code)
			}
		case highlightlib.EventSource:
			fmt.Print(e.Text)
		}
	}
	fmt.Print(ansiReset)
	return nil
}

func attributeCallback(h highlightlib.Highlight, languageName string) string {
	class, ok := cssTheme[h]
	if !ok {
		return ""
	}
	return fmt.Sprintf(`class="%s"`, class)
}
