package hpack

import (
	"hpackcodec/internal/logging"
)

// Decoder turns HPACK-encoded header blocks back into Header lists,
// maintaining the dynamic table across calls to Decode the way an HTTP/2
// connection maintains one compression context across all the requests (or
// responses) it carries.
type Decoder struct {
	table         *Table
	settingsLimit *int
	logger        logging.Logger
}

// NewDecoder creates a Decoder with the given initial dynamic table size,
// matching the SETTINGS_HEADER_TABLE_SIZE value the decoding side has
// advertised to its peer.
func NewDecoder(maxDynamicTableSize int) *Decoder {
	return &Decoder{
		table: NewTable(maxDynamicTableSize),
	}
}

// SetLogger attaches a logger used to record size updates and insertion
// events. A nil logger (the default) disables logging.
func (d *Decoder) SetLogger(l logging.Logger) {
	d.logger = l
}

// SetSettingsLimit bounds the dynamic table size a peer-issued size update
// is allowed to request, mirroring the local SETTINGS_HEADER_TABLE_SIZE
// the decoding side has sent. A nil limit (the default) leaves size
// updates unbounded except by decodeInteger's own maxInteger sanity check.
func (d *Decoder) SetSettingsLimit(limit int) {
	d.settingsLimit = &limit
}

// TableSize reports the dynamic table's current size, for diagnostics.
func (d *Decoder) TableSize() int {
	return d.table.Size()
}

// Decode parses a complete header block and returns its header list in
// wire order. Each call to Decode processes one block; the dynamic table
// persists across calls on the same Decoder, per RFC 7541 §2.2. A
// dynamic-table-size-update is only legal before the block's first field
// representation (RFC 7541 §4.2), and at most two may appear there; once a
// field representation has been seen, or after two leading updates, a
// further size update is a DecodeError.
func (d *Decoder) Decode(block []byte) ([]Header, error) {
	var headers []Header
	sawField := false
	sizeUpdates := 0
	offset := 0

	for offset < len(block) {
		kind := classifyFirstOctet(block[offset])

		if kind == repSizeUpdate {
			if sawField || sizeUpdates == 2 {
				return nil, newDecodeError(offset, ErrMisplacedSizeUpdate)
			}
			sizeUpdates++
			size, n, err := decodeInteger(block[offset:], kind.prefixBits())
			if err != nil {
				return nil, newDecodeError(offset, err)
			}
			if err := d.table.Resize(size, d.settingsLimit); err != nil {
				return nil, newDecodeError(offset, err)
			}
			if d.logger != nil {
				d.logger.Log(logging.LogLevelDebug, "hpack: dynamic table resized to %d", size)
			}
			offset += n
			continue
		}

		sawField = true

		h, n, err := d.decodeField(block[offset:], kind)
		if err != nil {
			return nil, newDecodeError(offset, err)
		}
		headers = append(headers, h)
		offset += n
	}

	return headers, nil
}

// decodeField decodes a single field representation (every kind except
// repSizeUpdate) starting at the beginning of buf, returning the resulting
// header and the number of bytes consumed.
func (d *Decoder) decodeField(buf []byte, kind representationKind) (Header, int, error) {
	if kind == repIndexed {
		index, n, err := decodeInteger(buf, kind.prefixBits())
		if err != nil {
			return Header{}, 0, err
		}
		if index == 0 {
			return Header{}, 0, ErrInvalidIndex
		}
		h, ok := d.table.Lookup(index)
		if !ok {
			return Header{}, 0, ErrInvalidIndex
		}
		return h, n, nil
	}

	offset := 0
	var name string

	if kind.nameIsIndex() {
		index, n, err := decodeInteger(buf, kind.prefixBits())
		if err != nil {
			return Header{}, 0, err
		}
		if index == 0 {
			return Header{}, 0, ErrInvalidIndex
		}
		entry, ok := d.table.Lookup(index)
		if !ok {
			return Header{}, 0, ErrInvalidIndex
		}
		name = entry.Name
		offset += n
	} else {
		// The first octet carries only flag bits for this form (the name
		// length prefix starts its own octet), so skip it before reading
		// the name string literal.
		offset++
		s, n, err := decodeString(buf[offset:])
		if err != nil {
			return Header{}, 0, err
		}
		name = s
		offset += n
	}

	value, n, err := decodeString(buf[offset:])
	if err != nil {
		return Header{}, 0, err
	}
	offset += n

	mode := kind.mode()
	h := Header{Name: name, Value: value, Sensitive: mode == indexNever}

	if mode == indexIncremental {
		d.table.Add(h)
		if d.logger != nil {
			d.logger.Log(logging.LogLevelDebug, "hpack: inserted %q into dynamic table (size now %d)", name, d.table.Size())
		}
	}

	return h, offset, nil
}
