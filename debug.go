package highlight

import "fmt"

// String gives a compact debug view of an in-progress run: the active
// layer count and occlusion depth. Mirrors the Debug derive the Rust
// original relies on for the same purpose; useful when a test failure
// needs to show why an event stream diverged from what was expected.
func (r *run) String() string {
	return fmt.Sprintf("run{layers=%d maxOpaqueDepth=%d offset=%d}", len(r.layers), r.maxOpaqueLayerDepth, r.sourceOffset)
}
