package hpack

// representationKind discriminates the eight first-octet forms RFC 7541
// §6 and §6.3 define. Every header block field is exactly one of these.
type representationKind int

const (
	repIndexed             representationKind = iota // §6.1
	repLiteralIncIndexed                              // §6.2.1, name is an index
	repLiteralIncNewName                              // §6.2.1, name is a literal
	repLiteralNoIndexIndexed                          // §6.2.2, name is an index
	repLiteralNoIndexNewName                          // §6.2.2, name is a literal
	repLiteralNeverIndexIndexed                       // §6.2.3, name is an index
	repLiteralNeverIndexNewName                       // §6.2.3, name is a literal
	repSizeUpdate                                     // §6.3
)

// indexingMode groups the three literal forms' repLiteral* variants by how
// they affect the dynamic table, independent of whether the name came from
// an index or a new literal.
type indexingMode int

const (
	indexIncremental indexingMode = iota // insert into the dynamic table
	indexNone                            // do not insert
	indexNever                           // do not insert, and mark Sensitive
)

// classifyFirstOctet identifies which representation form b begins, per
// the high-bit patterns of RFC 7541 §6.
func classifyFirstOctet(b byte) representationKind {
	switch {
	case b&0x80 != 0:
		return repIndexed
	case b&0x40 != 0:
		if b&0x3f != 0 {
			return repLiteralIncIndexed
		}
		return repLiteralIncNewName
	case b&0x20 != 0:
		return repSizeUpdate
	case b&0x10 != 0:
		if b&0x0f != 0 {
			return repLiteralNeverIndexIndexed
		}
		return repLiteralNeverIndexNewName
	default:
		if b&0x0f != 0 {
			return repLiteralNoIndexIndexed
		}
		return repLiteralNoIndexNewName
	}
}

// prefixBits returns the number of integer-prefix bits for the index or
// size-update value that follows a representation's first octet.
func (k representationKind) prefixBits() int {
	switch k {
	case repIndexed:
		return 7
	case repLiteralIncIndexed, repLiteralIncNewName:
		return 6
	case repSizeUpdate:
		return 5
	default:
		return 4
	}
}

// mode returns the dynamic-table indexing behaviour of a literal
// representation kind. Not meaningful for repIndexed or repSizeUpdate.
func (k representationKind) mode() indexingMode {
	switch k {
	case repLiteralIncIndexed, repLiteralIncNewName:
		return indexIncremental
	case repLiteralNeverIndexIndexed, repLiteralNeverIndexNewName:
		return indexNever
	default:
		return indexNone
	}
}

// nameIsIndex reports whether a literal representation's name comes from
// the indexing table (true) or is itself a string literal (false).
func (k representationKind) nameIsIndex() bool {
	switch k {
	case repLiteralIncIndexed, repLiteralNoIndexIndexed, repLiteralNeverIndexIndexed:
		return true
	default:
		return false
	}
}

// firstOctetTag returns the high bits to OR into a literal representation's
// first octet (before the name-index/length prefix is added), selected by
// indexing policy. The name-indexed and new-name sub-forms share these
// same high bits; they differ only in the prefix value that follows
// (zero signals new-name), handled by the caller.
func firstOctetTag(mode indexingMode) byte {
	switch mode {
	case indexIncremental:
		return 0x40
	case indexNever:
		return 0x10
	default:
		return 0x00
	}
}
