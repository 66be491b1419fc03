package highlight

// Source is the byte-addressable text a Highlighter walks. The
// implementation in this module always materialises it as a single
// contiguous slice before starting a run; the interface exists so a
// caller backed by a rope or piece table can adapt without copying their
// buffer into one contiguous allocation ahead of time, they only need to
// provide Bytes/Len.
type Source interface {
	// Bytes returns the text in [start, end). It must return the exact
	// same bytes for the exact same arguments every time it is called
	// for the lifetime of a single highlight run.
	Bytes(start, end uint) []byte
	// Len is the total length of the source in bytes.
	Len() uint
}

type byteSource []byte

func (b byteSource) Bytes(start, end uint) []byte { return []byte(b)[start:end] }
func (b byteSource) Len() uint                    { return uint(len(b)) }

// FromBytes adapts a plain byte slice to Source.
func FromBytes(b []byte) Source { return byteSource(b) }
