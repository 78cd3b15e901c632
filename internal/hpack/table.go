package hpack

// AddressKind discriminates the result of Table.Find.
type AddressKind int

const (
	// NotFound means neither name nor value matched any entry.
	NotFound AddressKind = iota
	// NameIndex means an entry with a matching name (but not value) was
	// found at Index.
	NameIndex
	// FullIndex means an entry with both name and value matching was
	// found at Index.
	FullIndex
)

// FindResult is the outcome of Table.Find: a Kind and, for NameIndex and
// FullIndex, the 1-based address of the lowest-numbered matching entry.
type FindResult struct {
	Kind  AddressKind
	Index int
}

// Table is the combined static+dynamic indexing table: RFC 7541's shared
// compression context, minus the Huffman and block-codec concerns, which
// live in huffman.go and decoder.go/encoder.go. Static addresses are
// 1..StaticTableSize; dynamic addresses continue from StaticTableSize+1,
// with the front of the dynamic deque (the most recently inserted entry)
// addressed lowest, per RFC 7541 §2.3.2.
//
// A Table is owned by exactly one Encoder or Decoder; the two never share
// one (spec.md §5's "no shared state" resource model).
type Table struct {
	maxSize     int
	currentSize int

	// dynamic holds entries newest-first (front = index 0 = address
	// StaticTableSize+1). name and full are secondary indexes into this
	// slice's *positions*, rebuilt in full on every insertion and eviction
	// so Find stays O(1) per spec.md §9.
	dynamic []Header
	name    map[string][]int
	full    map[string]int
}

// NewTable creates a table with an empty dynamic table and the given
// maximum size.
func NewTable(maxSize int) *Table {
	return &Table{
		maxSize: maxSize,
		name:    make(map[string][]int),
		full:    make(map[string]int),
	}
}

// Size returns the current total HPACK size of the dynamic table.
func (t *Table) Size() int {
	return t.currentSize
}

// MaxSize returns the table's current maximum permitted dynamic table size.
func (t *Table) MaxSize() int {
	return t.maxSize
}

// DynamicLen returns the number of entries currently in the dynamic table.
func (t *Table) DynamicLen() int {
	return len(t.dynamic)
}

// Lookup resolves a 1-based address to a Header. index 1..StaticTableSize
// comes from the static table; StaticTableSize+1.. comes from the dynamic
// table, front-first.
func (t *Table) Lookup(index int) (Header, bool) {
	if index >= 1 && index <= StaticTableSize {
		return staticTable[index-1], true
	}
	dynIdx := index - StaticTableSize - 1
	if dynIdx >= 0 && dynIdx < len(t.dynamic) {
		return t.dynamic[dynIdx], true
	}
	return Header{}, false
}

// Find searches the combined address space for the lowest index matching
// name and value fully, or failing that, the lowest index matching name
// only. The static table is checked first by construction: its entries
// occupy addresses 1..StaticTableSize, always lower than any dynamic
// address, so comparing the best static and best dynamic candidates by
// address number alone gives the RFC 7541 §2.3.3-silent, byte-compatible
// tie-break spec.md §4.1 and §9 require preserving.
func (t *Table) Find(name, value string) FindResult {
	if idx, ok := staticFullIndex[staticKey(name, value)]; ok {
		return FindResult{Kind: FullIndex, Index: idx}
	}

	bestNameStatic, hasNameStatic := staticNameIndex[name]

	if pos, ok := t.full[staticKey(name, value)]; ok {
		return FindResult{Kind: FullIndex, Index: t.addressOf(pos)}
	}

	if positions, ok := t.name[name]; ok && len(positions) > 0 {
		// t.name[name] is kept sorted newest-first (lowest dynamic address
		// first), since reindex appends positions in ascending order.
		dynIdx := t.addressOf(positions[0])
		if !hasNameStatic || dynIdx < bestNameStatic {
			return FindResult{Kind: NameIndex, Index: dynIdx}
		}
	}

	if hasNameStatic {
		return FindResult{Kind: NameIndex, Index: bestNameStatic}
	}
	return FindResult{Kind: NotFound}
}

// addressOf converts a dynamic slice position (0 = front = newest) to its
// 1-based table address.
func (t *Table) addressOf(pos int) int {
	return StaticTableSize + 1 + pos
}

// Add inserts a new entry at the front of the dynamic table, then evicts
// from the back until the size invariant holds. An entry whose own size
// exceeds maxSize empties the dynamic table entirely and is not inserted
// (RFC 7541 §4.4) — this is success, not an error.
func (t *Table) Add(h Header) {
	entrySize := h.size()

	if entrySize > t.maxSize {
		t.dynamic = t.dynamic[:0]
		t.currentSize = 0
		t.name = make(map[string][]int)
		t.full = make(map[string]int)
		return
	}

	t.dynamic = append([]Header{h}, t.dynamic...)
	t.currentSize += entrySize
	t.reindex()
	t.evict()
}

// Resize sets the table's maximum dynamic table size, evicting from the
// back until the invariant holds. If settingsLimit is non-nil and newSize
// exceeds it, Resize fails without mutating the table.
func (t *Table) Resize(newSize int, settingsLimit *int) error {
	if settingsLimit != nil && newSize > *settingsLimit {
		return ErrSizeUpdateTooLarge
	}
	t.maxSize = newSize
	t.evict()
	return nil
}

// evict removes entries from the back of the dynamic table (oldest first)
// until currentSize <= maxSize, then reindexes.
func (t *Table) evict() {
	evicted := false
	for t.currentSize > t.maxSize && len(t.dynamic) > 0 {
		last := t.dynamic[len(t.dynamic)-1]
		t.dynamic = t.dynamic[:len(t.dynamic)-1]
		t.currentSize -= last.size()
		evicted = true
	}
	if evicted {
		t.reindex()
	}
}

// reindex rebuilds the secondary name/full indexes from scratch. The
// dynamic table is small relative to maxSize (bounded by maxSize/32, since
// every entry costs at least 32 octets of overhead), so a full rebuild on
// every mutation is simple and, per spec.md §9, an acceptable amortised
// cost; a production-grade table could instead patch the indexes
// incrementally on insert/evict.
func (t *Table) reindex() {
	t.name = make(map[string][]int, len(t.dynamic))
	t.full = make(map[string]int, len(t.dynamic))
	for pos, h := range t.dynamic {
		t.name[h.Name] = append(t.name[h.Name], pos)
		key := staticKey(h.Name, h.Value)
		if _, ok := t.full[key]; !ok {
			t.full[key] = pos
		}
	}
}
