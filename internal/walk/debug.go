package walk

import "fmt"

// String gives a compact debug view of a layer's current position,
// useful when tracing why a merged event stream ordered two layers the
// way it did. Mirrors the Debug derive the Rust original relies on for
// the same purpose.
func (l *Layer) String() string {
	node := l.Node()
	return fmt.Sprintf("Layer{lang=%s depth=%d offset=%d atEnd=%t kind=%s}",
		l.LanguageName, l.Depth, l.Offset(), l.AtNodeEnd, node.Kind())
}
