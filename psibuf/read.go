package psibuf

import (
	"fmt"
	"time"

	"github.com/arloliu/sitab/endian"
	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/sitime"
)

// GetBit reads one bit.
func (b *Buffer) GetBit() uint8 {
	if !b.reserve(1, false) {
		return 0
	}

	bit := b.data[b.bitPos>>3] >> (7 - uint(b.bitPos&7)) & 1
	b.bitPos++

	return bit
}

// GetBool reads one bit as a boolean.
func (b *Buffer) GetBool() bool {
	return b.GetBit() != 0
}

// GetBits reads an n-bit unsigned field, n in [1, 32], MSB first.
func (b *Buffer) GetBits(n int) uint32 {
	if n < 1 || n > 32 {
		b.SetUserError(fmt.Errorf("%w: %d", errs.ErrInvalidBitCount, n))
		return 0
	}
	if !b.reserve(n, false) {
		return 0
	}

	var val uint32
	for n > 0 {
		offset := b.bitPos & 7
		avail := 8 - offset
		take := min(avail, n)

		chunk := uint32(b.data[b.bitPos>>3]) >> (avail - take) & (1<<take - 1)
		val = val<<take | chunk

		b.bitPos += take
		n -= take
	}

	return val
}

// SkipBits advances the cursor by n bits.
func (b *Buffer) SkipBits(n int) {
	if b.reserve(n, false) {
		b.bitPos += n
	}
}

// SkipBytes advances the cursor by n bytes.
func (b *Buffer) SkipBytes(n int) {
	b.SkipBits(n * 8)
}

// GetUInt8 reads an 8-bit unsigned integer.
func (b *Buffer) GetUInt8() uint8 {
	if !b.ByteAligned() {
		return uint8(b.GetBits(8)) //nolint:gosec // G115: 8-bit field
	}
	if !b.reserve(8, false) {
		return 0
	}
	v := b.data[b.bitPos>>3]
	b.bitPos += 8

	return v
}

// GetUInt16 reads a big-endian 16-bit unsigned integer.
func (b *Buffer) GetUInt16() uint16 {
	if !b.ByteAligned() {
		return uint16(b.GetBits(16)) //nolint:gosec // G115: 16-bit field
	}
	if !b.reserve(16, false) {
		return 0
	}
	v := b.engine.Uint16(b.data[b.bitPos>>3:])
	b.bitPos += 16

	return v
}

// GetUInt24 reads a big-endian 24-bit unsigned integer.
func (b *Buffer) GetUInt24() uint32 {
	if !b.ByteAligned() {
		return b.GetBits(24)
	}
	if !b.reserve(24, false) {
		return 0
	}
	v := endian.Uint24(b.data[b.bitPos>>3:])
	b.bitPos += 24

	return v
}

// GetUInt32 reads a big-endian 32-bit unsigned integer.
func (b *Buffer) GetUInt32() uint32 {
	if !b.ByteAligned() {
		return b.GetBits(32)
	}
	if !b.reserve(32, false) {
		return 0
	}
	v := b.engine.Uint32(b.data[b.bitPos>>3:])
	b.bitPos += 32

	return v
}

// GetBytes reads n bytes into a new slice. On error it returns nil.
func (b *Buffer) GetBytes(n int) []byte {
	if !b.reserve(n*8, false) {
		return nil
	}

	out := make([]byte, n)
	if b.ByteAligned() {
		start := b.bitPos >> 3
		copy(out, b.data[start:start+n])
		b.bitPos += n * 8

		return out
	}

	for i := range out {
		out[i] = uint8(b.GetBits(8)) //nolint:gosec // G115: 8-bit field
	}

	return out
}

// GetBCD reads a 2-digit binary-coded decimal byte. An invalid digit latches
// ErrInvalidBCD.
func (b *Buffer) GetBCD() int {
	raw := b.GetUInt8()
	if b.err != nil {
		return 0
	}
	v, err := sitime.DecodeBCD(raw)
	if err != nil {
		b.SetUserError(err)
		return 0
	}

	return v
}

// GetFullMJD reads a 5-byte MJD+BCD timestamp. When jst is true the encoded
// value is JST civil time and is converted to UTC.
func (b *Buffer) GetFullMJD(jst bool) time.Time {
	raw := b.GetBytes(sitime.MJDSize)
	if b.err != nil {
		return time.Time{}
	}
	t, err := sitime.DecodeMJD(raw, jst)
	if err != nil {
		b.SetUserError(err)
		return time.Time{}
	}

	return t
}
