package hpack

import (
	"hpackcodec/internal/logging"
)

// DefaultMaxDynamicTableSize is the dynamic table size a fresh Encoder
// starts with when NewEncoder is called without an explicit size.
const DefaultMaxDynamicTableSize = 4096

// IndexingPolicy selects how Encoder.Encode treats a non-sensitive header
// it does not already have a full-match index for: insert it into the
// dynamic table for future reuse, or emit it as a literal without
// indexing. It has no effect on a Header whose Sensitive field is set —
// those are always emitted as never-indexed literals regardless of policy.
type IndexingPolicy int

const (
	// IndexIncremental inserts new headers into the dynamic table. This is
	// the default: it is the only policy that lets the dynamic table do
	// any compression work at all.
	IndexIncremental IndexingPolicy = iota
	// IndexNone never inserts into the dynamic table, emitting
	// literal-without-indexing representations instead.
	IndexNone
)

// Encoder turns Header lists into HPACK-encoded header blocks, maintaining
// the dynamic table across calls to Encode.
type Encoder struct {
	table  *Table
	policy IndexingPolicy
	logger logging.Logger
}

// NewEncoder creates an Encoder with the given initial dynamic table size,
// or DefaultMaxDynamicTableSize if none is given.
func NewEncoder(dynamicTableSize ...int) *Encoder {
	maxTableSize := DefaultMaxDynamicTableSize
	if len(dynamicTableSize) > 0 {
		maxTableSize = dynamicTableSize[0]
	}
	return &Encoder{
		table: NewTable(maxTableSize),
	}
}

// SetLogger attaches a logger used to record insertion and resize events.
// A nil logger (the default) disables logging.
func (e *Encoder) SetLogger(l logging.Logger) {
	e.logger = l
}

// SetIndexingPolicy changes how future, non-sensitive headers are emitted.
func (e *Encoder) SetIndexingPolicy(p IndexingPolicy) {
	e.policy = p
}

// TableSize reports the dynamic table's current size, for diagnostics.
func (e *Encoder) TableSize() int {
	return e.table.Size()
}

// Resize changes the dynamic table's maximum size and returns the
// dynamic-table-size-update representation (RFC 7541 §6.3) that must be
// placed at the front of the next header block for the peer's table to
// stay in sync.
func (e *Encoder) Resize(newSize int) []byte {
	e.table.Resize(newSize, nil)
	if e.logger != nil {
		e.logger.Log(logging.LogLevelDebug, "hpack: encoder dynamic table resized to %d", newSize)
	}
	return appendTaggedInteger(nil, 0x20, newSize, repSizeUpdate.prefixBits())
}

// Encode appends the HPACK encoding of headers to dst and returns the
// extended slice. Headers are encoded in order; a non-sensitive header is
// indexed if a full match already exists in the table. Any other header is
// emitted as an indexed-name literal if its name has a NameIndex match, and
// otherwise as a new-name literal; either literal is inserted into the
// dynamic table unless the policy or Sensitive rules it out.
func (e *Encoder) Encode(dst []byte, headers []Header) []byte {
	for _, h := range headers {
		dst = e.encodeOne(dst, h)
	}
	return dst
}

func (e *Encoder) encodeOne(dst []byte, h Header) []byte {
	result := e.table.Find(h.Name, h.Value)

	if result.Kind == FullIndex && !h.Sensitive {
		return appendTaggedInteger(dst, 0x80, result.Index, repIndexed.prefixBits())
	}

	mode := e.effectiveMode(h)
	tag := firstOctetTag(mode)
	prefixBits := literalNamePrefixBits(mode)

	if result.Kind == NameIndex {
		dst = appendTaggedInteger(dst, tag, result.Index, prefixBits)
	} else {
		dst = append(dst, tag)
		dst = appendString(dst, h.Name)
	}

	dst = appendString(dst, h.Value)

	if mode == indexIncremental {
		e.table.Add(h)
		if e.logger != nil {
			e.logger.Log(logging.LogLevelDebug, "hpack: inserted %q into dynamic table (size now %d)", h.Name, e.table.Size())
		}
	}

	return dst
}

// effectiveMode resolves a header's actual indexing behaviour: Sensitive
// always wins, overriding the encoder's policy.
func (e *Encoder) effectiveMode(h Header) indexingMode {
	if h.Sensitive {
		return indexNever
	}
	if e.policy == IndexNone {
		return indexNone
	}
	return indexIncremental
}

// literalNamePrefixBits returns the integer-prefix width of a literal
// representation's first octet when its name comes from the table, per
// RFC 7541 §6.2: 6 bits for incremental indexing, 4 bits otherwise.
func literalNamePrefixBits(mode indexingMode) int {
	if mode == indexIncremental {
		return 6
	}
	return 4
}

// appendTaggedInteger appends the RFC 7541 §5.1 encoding of i under an
// n-bit prefix to dst, OR-ing tag's high flag bits into the first
// resulting octet.
func appendTaggedInteger(dst []byte, tag byte, i, n int) []byte {
	start := len(dst)
	dst = appendInteger(dst, i, n)
	dst[start] |= tag
	return dst
}
