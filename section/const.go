package section

const (
	// ShortHeaderSize is the size of the header common to all sections.
	ShortHeaderSize = 3
	// LongHeaderSize is the size of the header of a long section.
	LongHeaderSize = 8
	// CRCSize is the size of the trailing CRC32.
	CRCSize = 4

	// MaxPSISize is the largest section of an MPEG-defined table (id < 0x80).
	MaxPSISize = 1024
	// MaxPrivateSize is the largest section of any other table.
	MaxPrivateSize = 4096

	// FirstPrivateTableID is the first table id carrying the private bit.
	FirstPrivateTableID = 0x40
)

// MaxSize returns the largest section size allowed for a table id, header
// and CRC included.
func MaxSize(tableID uint8) int {
	if tableID < 0x80 {
		return MaxPSISize
	}

	return MaxPrivateSize
}

// MaxPayloadSize returns the largest payload of a section with the given
// table id and framing.
func MaxPayloadSize(tableID uint8, long, withCRC bool) int {
	size := MaxSize(tableID) - ShortHeaderSize
	if long {
		size -= LongHeaderSize - ShortHeaderSize
	}
	if long || withCRC {
		size -= CRCSize
	}

	return size
}
