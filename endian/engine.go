// Package endian provides the byte order engine used on the SI wire.
//
// All MPEG, DVB and ATSC table fields are big-endian, so sitab never needs a
// runtime endianness choice. The package keeps the EndianEngine abstraction
// so readers and writers can share fixed-width helpers, and adds the 24-bit
// accessors that the standard library does not provide (BCD times, MJD
// time-of-day, 24-bit rates).
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire returns the engine for the SI wire format (big-endian).
func Wire() EndianEngine {
	return binary.BigEndian
}

// Uint24 decodes a big-endian 24-bit value from the first 3 bytes of b.
func Uint24(b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// PutUint24 encodes the low 24 bits of v into the first 3 bytes of b.
func PutUint24(b []byte, v uint32) {
	_ = b[2]
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// AppendUint24 appends the low 24 bits of v to b.
func AppendUint24(b []byte, v uint32) []byte {
	return append(b, byte(v>>16), byte(v>>8), byte(v))
}
