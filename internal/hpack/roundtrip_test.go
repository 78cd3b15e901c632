package hpack

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleHeaderLists() [][]Header {
	return [][]Header{
		{{Name: ":method", Value: "GET"}, {Name: ":scheme", Value: "http"}, {Name: ":path", Value: "/"}},
		{{Name: ":method", Value: "POST"}, {Name: ":path", Value: "/index.html"}, {Name: "content-type", Value: "application/json"}},
		{{Name: "custom-key", Value: "custom-value"}},
		{{Name: "custom-key", Value: "custom-value"}, {Name: "custom-key", Value: "custom-value"}},
		{{Name: "x-a", Value: "1"}, {Name: "x-b", Value: "2"}, {Name: "x-c", Value: "3"}, {Name: "x-a", Value: "1"}},
		{{Name: "authorization", Value: "Bearer abc.def.ghi", Sensitive: true}},
		{},
		{{Name: ":status", Value: "200"}, {Name: "cache-control", Value: "no-cache"}, {Name: "set-cookie", Value: "a=b; c=d"}},
	}
}

// TestRoundTrip is spec.md §8 property 1: for every header list and every
// max_size >= 64, decoding the encoder's output against a fresh decoder
// context of the same max_size yields exactly the input list.
func TestRoundTrip(t *testing.T) {
	for _, maxSize := range []int{64, 128, 256, 4096} {
		for i, headers := range sampleHeaderLists() {
			enc := NewEncoder(maxSize)
			block := enc.Encode(nil, headers)

			dec := NewDecoder(maxSize)
			decoded, err := dec.Decode(block)
			assert.NoError(t, err, "case %d maxSize %d", i, maxSize)

			if len(headers) == 0 {
				assert.Empty(t, decoded)
			} else {
				assert.Equal(t, headers, decoded, "case %d maxSize %d", i, maxSize)
			}
		}
	}
}

// TestContextConvergence is spec.md §8 property 2: after encoding, the
// encoder's dynamic table and the decoder's dynamic table must match
// byte-for-byte.
func TestContextConvergence(t *testing.T) {
	for i, headers := range sampleHeaderLists() {
		enc := NewEncoder(4096)
		dec := NewDecoder(4096)

		block := enc.Encode(nil, headers)
		_, err := dec.Decode(block)
		assert.NoError(t, err, "case %d", i)

		assert.Equal(t, enc.table.dynamic, dec.table.dynamic, "case %d", i)
		assert.Equal(t, enc.table.Size(), dec.table.Size(), "case %d", i)
	}
}

// TestRoundTripMultipleBlocks checks that state (dynamic table) correctly
// persists across successive Encode/Decode calls on the same context pair,
// the way a real HTTP/2 connection reuses one context across many header
// blocks (spec.md §5).
func TestRoundTripMultipleBlocks(t *testing.T) {
	enc := NewEncoder(4096)
	dec := NewDecoder(4096)

	blocks := sampleHeaderLists()
	for i, headers := range blocks {
		block := enc.Encode(nil, headers)
		decoded, err := dec.Decode(block)
		assert.NoError(t, err, "block %d", i)
		if len(headers) == 0 {
			assert.Empty(t, decoded)
		} else {
			assert.Equal(t, headers, decoded, "block %d", i)
		}
		assert.Equal(t, enc.table.dynamic, dec.table.dynamic, "block %d", i)
	}
}

// TestRoundTripLargeHuffmanValue is spec.md §8 scenario S5: a short name
// with a long (~1500-byte) ASCII value round-trips exactly, and the
// encoder chooses the Huffman-encoded new-name literal form (since a
// repetitive ASCII value always compresses under the canonical code).
func TestRoundTripLargeHuffmanValue(t *testing.T) {
	value := strings.Repeat("abcdefghijklmnopqrstuvwxyz0123456789", 41) // 1476 bytes
	headers := []Header{{Name: "short-key", Value: value}}

	enc := NewEncoder(4096)
	block := enc.Encode(nil, headers)

	// New-name literal with incremental indexing: bare 0x40 tag byte,
	// then a Huffman-flagged (H=1) name length.
	assert.Equal(t, byte(0x40), block[0])
	assert.NotZero(t, block[1]&huffmanFlag, "name string should be Huffman-encoded")

	dec := NewDecoder(4096)
	decoded, err := dec.Decode(block)
	assert.NoError(t, err)
	assert.Equal(t, headers, decoded)
}

// TestRoundTripManyDistinctHeadersEvicts exercises eviction under
// round-trip pressure: a small table forces the encoder to repeatedly
// insert-and-evict, and decode must still track exactly what survives.
func TestRoundTripManyDistinctHeadersEvicts(t *testing.T) {
	const maxSize = 200
	enc := NewEncoder(maxSize)
	dec := NewDecoder(maxSize)

	var headers []Header
	for i := 0; i < 30; i++ {
		headers = append(headers, Header{Name: fmt.Sprintf("x-header-%02d", i), Value: fmt.Sprintf("value-%02d", i)})
	}

	block := enc.Encode(nil, headers)
	decoded, err := dec.Decode(block)
	assert.NoError(t, err)
	assert.Equal(t, headers, decoded)
	assert.LessOrEqual(t, enc.TableSize(), maxSize)
	assert.LessOrEqual(t, dec.TableSize(), maxSize)
	assert.Equal(t, enc.table.dynamic, dec.table.dynamic)
}

// TestEvictionInvariantUnderMixedOps is spec.md §8 property 6: after any
// sequence of Add and Resize, current_size(ctx) <= max_size.
func TestEvictionInvariantUnderMixedOps(t *testing.T) {
	table := NewTable(500)
	ops := []func(){
		func() { table.Add(Header{Name: "a", Value: strings.Repeat("x", 50)}) },
		func() { table.Add(Header{Name: "b", Value: strings.Repeat("y", 100)}) },
		func() { table.Resize(200, nil) },
		func() { table.Add(Header{Name: "c", Value: strings.Repeat("z", 10)}) },
		func() { table.Resize(1000, nil) },
		func() { table.Add(Header{Name: "d", Value: strings.Repeat("w", 900)}) },
		func() { table.Resize(50, nil) },
	}
	for i, op := range ops {
		op()
		assert.LessOrEqual(t, table.Size(), table.MaxSize(), "after op %d", i)
	}
}
