/*
Package highlight merges one or more tree-sitter concrete syntax trees —
a document tree plus whatever language injections its property sheet
asks for — into a single ordered stream of highlight events.

# Usage

Build a [language.Language] for your grammar, load a property sheet with
[LoadPropertySheet], then ask a [Highlighter] to walk a source buffer:

	lang := language.New("go", tree_sitter_go.Language())
	sheet, err := LoadPropertySheet(lang, sheetSource, SheetFormatYAML)
	if err != nil {
		log.Fatal(err)
	}

	h := New()
	events := h.Highlight(context.Background(), LanguageConfig{
		Name:     lang.Name,
		Language: lang.Lang,
		Sheet:    sheet,
	}, FromBytes(source), nil, nil)

	for event, err := range events {
		if err != nil {
			log.Fatal(err)
		}
		switch e := event.(type) {
		case EventStart:
			log.Printf("start: %s", e.Highlight)
		case EventEnd:
			log.Printf("end")
		case EventSource:
			log.Printf("text: %q", e.Text)
		}
	}

A single [Highlighter] owns one [tree_sitter.Parser] and is not safe for
concurrent use from multiple goroutines; give each goroutine its own.
*/
package highlight
