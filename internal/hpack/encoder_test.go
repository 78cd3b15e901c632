package hpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEncodeS3IndexedMethodGet is spec.md §8 scenario S3.
func TestEncodeS3IndexedMethodGet(t *testing.T) {
	enc := NewEncoder(1000)
	out := enc.Encode(nil, []Header{{Name: ":method", Value: "GET"}})
	assert.Equal(t, []byte{0x82}, out)
	assert.Equal(t, 0, enc.TableSize())
}

// TestEncodeDispatchFullIndex is spec.md §4.3.4 step 2: a full static
// match is always emitted as a single Indexed byte.
func TestEncodeDispatchFullIndex(t *testing.T) {
	enc := NewEncoder(4096)
	out := enc.Encode(nil, []Header{{Name: ":scheme", Value: "http"}})
	assert.Equal(t, []byte{0x86}, out)
}

// TestEncodeDispatchNameIndexInsertsAndReuses is spec.md §4.3.4 step 3:
// a name-only match emits a literal-with-incremental-indexing-name-indexed
// form and inserts, so the second occurrence of the same pair becomes a
// full index hit.
func TestEncodeDispatchNameIndexInsertsAndReuses(t *testing.T) {
	enc := NewEncoder(4096)
	out := enc.Encode(nil, []Header{{Name: ":status", Value: "451"}})
	// 0x48 = literal-with-incremental-indexing, name index 8 (the lowest
	// static address carrying ":status").
	assert.Equal(t, byte(0x48), out[0])
	assert.Greater(t, enc.TableSize(), 0)

	out2 := enc.Encode(nil, []Header{{Name: ":status", Value: "451"}})
	assert.Equal(t, []byte{byte(0x80 | (StaticTableSize + 1))}, out2)
}

// TestEncodeDispatchNotFoundInsertsNewName is spec.md §4.3.4 step 4.
func TestEncodeDispatchNotFoundInsertsNewName(t *testing.T) {
	enc := NewEncoder(4096)
	out := enc.Encode(nil, []Header{{Name: "x-custom", Value: "val"}})
	assert.Equal(t, byte(0x40), out[0])
	assert.Equal(t, len("x-custom")+len("val")+32, enc.TableSize())

	dec := NewDecoder(4096)
	headers, err := dec.Decode(out)
	assert.NoError(t, err)
	assert.Equal(t, []Header{{Name: "x-custom", Value: "val"}}, headers)
}

// TestEncodeIndexingPolicyNone verifies SetIndexingPolicy(IndexNone) never
// grows the dynamic table for non-sensitive headers.
func TestEncodeIndexingPolicyNone(t *testing.T) {
	enc := NewEncoder(4096)
	enc.SetIndexingPolicy(IndexNone)
	enc.Encode(nil, []Header{{Name: "x-custom", Value: "val"}})
	assert.Equal(t, 0, enc.TableSize())

	dec := NewDecoder(4096)
	out := enc.Encode(nil, []Header{{Name: "x-custom", Value: "val2"}})
	headers, err := dec.Decode(out)
	assert.NoError(t, err)
	assert.Equal(t, []Header{{Name: "x-custom", Value: "val2"}}, headers)
}

// TestEncodeSensitiveNeverIndexes is SPEC_FULL.md property 10: a Sensitive
// header is always emitted never-indexed, regardless of policy, and never
// grows the dynamic table even if an identical non-sensitive header
// would otherwise have matched and indexed.
func TestEncodeSensitiveNeverIndexes(t *testing.T) {
	enc := NewEncoder(4096)
	out := enc.Encode(nil, []Header{{Name: "cookie", Value: "secret=1", Sensitive: true}})
	assert.Equal(t, 0, enc.TableSize())

	dec := NewDecoder(4096)
	headers, err := dec.Decode(out)
	assert.NoError(t, err)
	assert.Len(t, headers, 1)
	assert.True(t, headers[0].Sensitive)
	assert.Equal(t, 0, dec.TableSize())

	// A later non-sensitive occurrence of the identical pair must not
	// find a stale full-index match (the never-indexed encode above
	// inserted nothing): it still resolves "cookie" to the static
	// table's bare-name entry and emits a name-indexed incremental
	// literal, now actually inserting into the dynamic table.
	out2 := enc.Encode(nil, []Header{{Name: "cookie", Value: "secret=1"}})
	assert.Equal(t, byte(0x60), out2[0])
	assert.Greater(t, enc.TableSize(), 0)
}

// TestEncodeIndexZeroNeverEmitted is spec.md §8 property 9: the encoder
// never has a reason to emit index 0 since NotFound always goes through
// the new-name literal path, which carries no index at all.
func TestEncodeIndexZeroNeverEmitted(t *testing.T) {
	enc := NewEncoder(4096)
	out := enc.Encode(nil, []Header{{Name: "brand-new-name", Value: "v"}})
	// First byte is the bare tag (0x40), never an indexed-name form
	// carrying a literal 0.
	assert.Equal(t, byte(0x40), out[0])
}

func TestEncodeResizeEmitsSizeUpdate(t *testing.T) {
	enc := NewEncoder(4096)
	enc.Encode(nil, []Header{{Name: "x-custom", Value: "val"}})
	update := enc.Resize(100)
	assert.LessOrEqual(t, enc.TableSize(), 100)

	dec := NewDecoder(4096)
	_, err := dec.Decode(update)
	assert.NoError(t, err)
	assert.Equal(t, 100, dec.table.MaxSize())
}

func TestEncodeMultipleHeadersOrderPreserved(t *testing.T) {
	enc := NewEncoder(4096)
	dec := NewDecoder(4096)
	headers := []Header{
		{Name: ":method", Value: "GET"},
		{Name: ":scheme", Value: "https"},
		{Name: ":path", Value: "/"},
		{Name: "custom-key", Value: "custom-value"},
		{Name: "custom-key", Value: "custom-value"},
	}
	out := enc.Encode(nil, headers)
	decoded, err := dec.Decode(out)
	assert.NoError(t, err)
	assert.Equal(t, headers, decoded)
}
