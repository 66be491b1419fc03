package highlight

import (
	"context"
	"math"
	"sort"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"go.gopad.dev/go-syntax-highlight/internal/rangeset"
	"go.gopad.dev/go-syntax-highlight/internal/treepath"
	"go.gopad.dev/go-syntax-highlight/internal/walk"
	"go.gopad.dev/go-syntax-highlight/types"
)

// maxPoint stands in for "end of source, however large it turns out to
// be" when constructing the root layer's all-encompassing range.
const maxPoint = math.MaxUint32

// cancellationCheckInterval mirrors CANCELLATION_CHECK_INTERVAL in
// original_source/highlight/src/lib.rs: checking the flag on every
// operation would dominate the cost of the walk itself.
const cancellationCheckInterval = 100

// run holds the mutable state of a single Highlighter.Highlight call: the
// merged layer list, kept in walk.Less order, plus the bookkeeping needed to emit
// Source events lazily as the cursor crosses byte boundaries.
//
// Grounded on the Highlighter struct and its Iterator::next
// implementation in original_source/highlight/src/lib.rs.
type run struct {
	ctx               context.Context
	parser            *tree_sitter.Parser
	root              LanguageConfig
	source            Source
	sourceBytes       []byte
	sourceOffset      uint
	injectionCallback InjectionCallback
	cancel            *CancellationFlag

	layers              []*walk.Layer
	maxOpaqueLayerDepth int
	operationCount      uint64

	// pendingReplacement holds the byte length of a malformed UTF-8
	// sequence that directly follows the valid prefix just emitted; the
	// next call to next() emits U+FFFD for it and skips past it before
	// resuming normal decoding.
	pendingReplacement *int
}

func newRun(ctx context.Context, parser *tree_sitter.Parser, root LanguageConfig, source Source, injectionCallback InjectionCallback, cancel *CancellationFlag) (*run, error) {
	r := &run{
		ctx:               ctx,
		parser:            parser,
		root:              root,
		source:            source,
		sourceBytes:       source.Bytes(0, source.Len()),
		injectionCallback: injectionCallback,
		cancel:            cancel,
	}

	rootRange := tree_sitter.Range{
		StartByte:  0,
		EndByte:    maxPoint,
		StartPoint: tree_sitter.Point{Row: 0, Column: 0},
		EndPoint:   tree_sitter.Point{Row: maxPoint, Column: maxPoint},
	}

	if err := r.pushLayer(root, []tree_sitter.Range{rootRange}, 0, true); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *run) pushLayer(cfg LanguageConfig, ranges []tree_sitter.Range, depth int, opaque bool) error {
	if err := r.parser.SetLanguage(cfg.Language); err != nil {
		return types.NewError(types.ErrInvalidLanguage, err)
	}
	if err := r.parser.SetIncludedRanges(ranges); err != nil {
		return types.NewError(types.ErrInvalidLanguage, err)
	}

	tree := r.parser.ParseCtx(r.ctx, r.sourceBytes, nil)
	if tree == nil {
		return types.NewError(types.ErrCancelled, nil)
	}

	layer := walk.New(r.sourceBytes, tree, cfg.Sheet, cfg.Name, ranges, depth, opaque)

	if opaque && depth > r.maxOpaqueLayerDepth {
		r.maxOpaqueLayerDepth = depth
	}

	i := sort.Search(len(r.layers), func(i int) bool { return !walk.Less(r.layers[i], layer) })
	r.layers = append(r.layers, nil)
	copy(r.layers[i+1:], r.layers[i:])
	r.layers[i] = layer
	return nil
}

func (r *run) addInjection(inj types.Injection, parent *walk.Layer) error {
	langName, ok := resolveInjectionLanguage(inj.Language, parent)
	if !ok {
		return nil
	}
	if r.injectionCallback == nil {
		return nil
	}
	cfg := r.injectionCallback(langName)
	if cfg == nil {
		return nil
	}

	contentNodes, err := treepath.Execute(parent.Node(), inj.Content)
	if err != nil {
		return types.NewError(types.ErrUnknown, err)
	}
	if len(contentNodes) == 0 {
		return nil
	}

	ranges := rangeset.Intersect(parent.Ranges, contentNodes, inj.IncludesChildren)
	if len(ranges) == 0 {
		return nil
	}

	return r.pushLayer(*cfg, ranges, parent.Depth+1, inj.IncludesChildren)
}

func resolveInjectionLanguage(il types.InjectionLanguage, layer *walk.Layer) (string, bool) {
	switch il.Kind {
	case types.InjectionLanguageLiteral:
		return il.Literal, true
	case types.InjectionLanguageTreePath:
		nodes, err := treepath.Execute(layer.Node(), il.Path)
		if err != nil || len(nodes) == 0 {
			return "", false
		}
		text := nodes[0].Utf8Text(layer.Source)
		if text == "" {
			return "", false
		}
		return text, true
	default:
		return "", false
	}
}

func (r *run) removeFirstLayer() {
	removed := r.layers[0]
	r.layers = r.layers[1:]
	if removed.Opaque && removed.Depth == r.maxOpaqueLayerDepth {
		max := 0
		for _, l := range r.layers {
			if l.Opaque && l.Depth > max {
				max = l.Depth
			}
		}
		r.maxOpaqueLayerDepth = max
	}
}

func (r *run) bubbleFirstLayer() {
	idx := 0
	for idx+1 < len(r.layers) && walk.Less(r.layers[idx+1], r.layers[idx]) {
		r.layers[idx], r.layers[idx+1] = r.layers[idx+1], r.layers[idx]
		idx++
	}
}

// next produces the next event, an error, or (nil, nil, false) once the
// walk is exhausted. It is the Go shape of Iterator::next from
// original_source/highlight/src/lib.rs: layer visibility by occlusion
// depth, lazy source emission deferred until a highlight boundary is
// reached, and local/non-local/plain highlight precedence.
func (r *run) next() (Event, error, bool) {
	if r.pendingReplacement != nil {
		n := *r.pendingReplacement
		r.pendingReplacement = nil
		r.sourceOffset += uint(n)
		return types.EventSource{Text: "�"}, nil, true
	}

	for len(r.layers) > 0 {
		r.operationCount++
		if r.cancel != nil && r.operationCount%cancellationCheckInterval == 0 {
			if r.cancel.Load() != 0 {
				return nil, types.NewError(types.ErrCancelled, nil), true
			}
		}

		first := r.layers[0]
		visible := first.Depth >= r.maxOpaqueLayerDepth

		var scopeEvent Event
		haveScopeEvent := false
		var deferred Event
		var deferredErr error
		haveDeferred := false

		if visible {
			if !first.AtNodeEnd {
				for _, inj := range first.Properties.Injections {
					if err := r.addInjection(inj, first); err != nil {
						return nil, err, true
					}
				}
			}

			highlight := firstSet(first.LocalHighlight, first.Properties.HighlightNonlocal, first.Properties.Highlight)
			if highlight != nil {
				nextOffset := first.Offset()
				if nextOffset > r.source.Len() {
					nextOffset = r.source.Len()
				}
				if r.sourceOffset < nextOffset {
					ev, err, ok := r.emitSource(nextOffset)
					deferred, deferredErr, haveDeferred = ev, err, ok
				} else if first.AtNodeEnd {
					scopeEvent = types.EventEnd{}
					haveScopeEvent = true
				} else {
					scopeEvent = types.EventStart{Highlight: *highlight}
					haveScopeEvent = true
				}
			}
		}

		if haveDeferred {
			// The highlight boundary is ahead of the cursor: emit the
			// plain text up to it now and revisit this same layer state
			// on the next call before advancing.
			return deferred, deferredErr, true
		}

		if first.Advance() {
			r.bubbleFirstLayer()
		} else {
			r.removeFirstLayer()
		}

		if haveScopeEvent {
			return scopeEvent, nil, true
		}
	}

	if r.sourceOffset < r.source.Len() {
		return r.emitSource(r.source.Len())
	}
	return nil, nil, false
}

func (r *run) emitSource(nextOffset uint) (Event, error, bool) {
	chunk := r.sourceBytes[r.sourceOffset:nextOffset]
	if utf8.Valid(chunk) {
		r.sourceOffset = nextOffset
		return types.EventSource{Text: string(chunk)}, nil, true
	}

	validLen := 0
	invalidLen := 1
	for validLen < len(chunk) {
		ru, size := utf8.DecodeRune(chunk[validLen:])
		if ru == utf8.RuneError && size <= 1 {
			if size == 0 {
				size = 1
			}
			invalidLen = size
			break
		}
		validLen += size
	}

	// invalidLen covers only the malformed sequence itself, never the rest
	// of chunk: bytes past it are still well-formed and must come back
	// through emitSource on the next call rather than being swallowed into
	// a single replacement run.
	if validLen > 0 {
		r.pendingReplacement = &invalidLen
		r.sourceOffset += uint(validLen)
		return types.EventSource{Text: string(chunk[:validLen])}, nil, true
	}

	r.sourceOffset += uint(invalidLen)
	return types.EventSource{Text: "�"}, nil, true
}

func firstSet(local, nonlocal *types.Highlight, plain *types.Highlight) *types.Highlight {
	if local != nil {
		return local
	}
	if nonlocal != nil {
		return nonlocal
	}
	return plain
}
