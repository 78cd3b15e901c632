package hpack

// Header is an ordered (name, value) pair as carried by a header block.
// Names are conventionally lowercase ASCII; the codec never normalises or
// validates either field, it only moves bytes.
type Header struct {
	Name  string
	Value string

	// Sensitive marks a header for never-indexed emission (RFC 7541
	// §6.2.3): the encoder refuses to insert it into the dynamic table and
	// signals intermediaries not to re-encode it with indexing either.
	// Decode sets Sensitive on any header parsed from a never-indexed
	// representation; it never sets it for no-indexing literals, which are
	// indistinguishable from never-indexed ones on the wire except for
	// this signalling bit.
	Sensitive bool
}

// size is the RFC 7541 §4.1 "HPACK size" of an entry: the number of octets
// the entry is considered to occupy in a dynamic table, including the
// fixed 32-octet overhead.
func (h Header) size() int {
	return len(h.Name) + len(h.Value) + 32
}

// StaticTableSize is the number of entries in the fixed RFC 7541 Appendix A
// table. Static addresses run 1..StaticTableSize; dynamic addresses start
// at StaticTableSize+1.
const StaticTableSize = 61

// staticTable is the RFC 7541 Appendix A table, 1-indexed by the caller
// (staticTable[i-1] is the entry at address i). Reproduced bit-for-bit from
// the RFC; regenerate with tools/statictablegen rather than hand-editing.
var staticTable = [StaticTableSize]Header{
	{Name: ":authority"},
	{Name: ":method", Value: "GET"},
	{Name: ":method", Value: "POST"},
	{Name: ":path", Value: "/"},
	{Name: ":path", Value: "/index.html"},
	{Name: ":scheme", Value: "http"},
	{Name: ":scheme", Value: "https"},
	{Name: ":status", Value: "200"},
	{Name: ":status", Value: "204"},
	{Name: ":status", Value: "206"},
	{Name: ":status", Value: "304"},
	{Name: ":status", Value: "400"},
	{Name: ":status", Value: "404"},
	{Name: ":status", Value: "500"},
	{Name: "accept-charset"},
	{Name: "accept-encoding", Value: "gzip, deflate"},
	{Name: "accept-language"},
	{Name: "accept-ranges"},
	{Name: "accept"},
	{Name: "access-control-allow-origin"},
	{Name: "age"},
	{Name: "allow"},
	{Name: "authorization"},
	{Name: "cache-control"},
	{Name: "content-disposition"},
	{Name: "content-encoding"},
	{Name: "content-language"},
	{Name: "content-length"},
	{Name: "content-location"},
	{Name: "content-range"},
	{Name: "content-type"},
	{Name: "cookie"},
	{Name: "date"},
	{Name: "etag"},
	{Name: "expect"},
	{Name: "expires"},
	{Name: "from"},
	{Name: "host"},
	{Name: "if-match"},
	{Name: "if-modified-since"},
	{Name: "if-none-match"},
	{Name: "if-range"},
	{Name: "if-unmodified-since"},
	{Name: "last-modified"},
	{Name: "link"},
	{Name: "location"},
	{Name: "max-forwards"},
	{Name: "proxy-authenticate"},
	{Name: "proxy-authorization"},
	{Name: "range"},
	{Name: "referer"},
	{Name: "refresh"},
	{Name: "retry-after"},
	{Name: "server"},
	{Name: "set-cookie"},
	{Name: "strict-transport-security"},
	{Name: "transfer-encoding"},
	{Name: "user-agent"},
	{Name: "vary"},
	{Name: "via"},
	{Name: "www-authenticate"},
}

// staticNameIndex maps a header name to the lowest static address carrying
// that name, for O(1) name-only lookups (spec.md §9's "name -> lowest
// static index" table).
var staticNameIndex = buildStaticNameIndex()

// staticFullIndex maps "name\x00value" to the static address of the entry
// carrying both, for O(1) full-match lookups.
var staticFullIndex = buildStaticFullIndex()

func buildStaticNameIndex() map[string]int {
	m := make(map[string]int, StaticTableSize)
	for i, h := range staticTable {
		if _, ok := m[h.Name]; !ok {
			m[h.Name] = i + 1
		}
	}
	return m
}

func buildStaticFullIndex() map[string]int {
	m := make(map[string]int, StaticTableSize)
	for i, h := range staticTable {
		m[staticKey(h.Name, h.Value)] = i + 1
	}
	return m
}

func staticKey(name, value string) string {
	return name + "\x00" + value
}
