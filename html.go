package highlight

import (
	"context"
	"html"
	"strings"

	"go.gopad.dev/go-syntax-highlight/types"
)

// htmlRenderer accumulates one output string per source line, reopening
// every currently-active highlight scope after each newline so each
// line's markup stands alone.
//
// Grounded on HtmlRenderer in original_source/highlight/src/lib.rs: the
// per-line buffering and CRLF-stripping are ported directly; HTML
// escaping uses the standard library's html.EscapeString in place of the
// original's own escape module, which the retrieved source tree did not
// include.
type htmlRenderer struct {
	lines       []string
	current     strings.Builder
	attrs       AttributeCallback
	languageName string
}

func (h *htmlRenderer) startScope(s Highlight) {
	attrs := ""
	if h.attrs != nil {
		attrs = h.attrs(s, h.languageName)
	}
	h.current.WriteString("<span")
	if attrs != "" {
		h.current.WriteByte(' ')
		h.current.WriteString(attrs)
	}
	h.current.WriteByte('>')
}

func (h *htmlRenderer) endScope() {
	h.current.WriteString("</span>")
}

func (h *htmlRenderer) finishLine() {
	h.lines = append(h.lines, h.current.String()+"\n")
	h.current.Reset()
}

func (h *htmlRenderer) addText(text string, scopes []Highlight) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if i > 0 {
			for range scopes {
				h.endScope()
			}
			h.finishLine()
			for _, s := range scopes {
				h.startScope(s)
			}
		}
		h.current.WriteString(html.EscapeString(line))
	}
}

// HighlightHTML walks root's merged event stream and renders it as a
// slice of HTML strings, one per source line, each ending in "\n". Every
// highlight scope open at a line break is closed before the break and
// reopened on the line that follows, so each returned line is valid HTML
// on its own.
func HighlightHTML(ctx context.Context, root LanguageConfig, source Source, injectionCallback InjectionCallback, cancel *CancellationFlag, attrs AttributeCallback) ([]string, error) {
	h := New()
	renderer := &htmlRenderer{attrs: attrs, languageName: root.Name}
	var scopes []Highlight

	for event, err := range h.Highlight(ctx, root, source, injectionCallback, cancel) {
		if err != nil {
			return nil, err
		}
		switch e := event.(type) {
		case types.EventStart:
			scopes = append(scopes, e.Highlight)
			renderer.startScope(e.Highlight)
		case types.EventEnd:
			if len(scopes) > 0 {
				scopes = scopes[:len(scopes)-1]
			}
			renderer.endScope()
		case types.EventSource:
			renderer.addText(e.Text, scopes)
		}
	}

	if renderer.current.Len() > 0 {
		renderer.finishLine()
	}

	return renderer.lines, nil
}
