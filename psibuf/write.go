package psibuf

import (
	"fmt"
	"time"

	"github.com/arloliu/sitab/endian"
	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/sitime"
)

// PutBit writes the lowest bit of bit.
func (b *Buffer) PutBit(bit uint8) {
	if !b.reserve(1, true) {
		return
	}

	idx := b.bitPos >> 3
	mask := byte(0x80) >> uint(b.bitPos&7)
	if bit&1 != 0 {
		b.data[idx] |= mask
	} else {
		b.data[idx] &^= mask
	}
	b.bitPos++
}

// PutBool writes one bit, 1 for true.
func (b *Buffer) PutBool(v bool) {
	if v {
		b.PutBit(1)
	} else {
		b.PutBit(0)
	}
}

// PutBits writes the low n bits of val, n in [1, 32], MSB first.
func (b *Buffer) PutBits(val uint32, n int) {
	if n < 1 || n > 32 {
		b.SetUserError(fmt.Errorf("%w: %d", errs.ErrInvalidBitCount, n))
		return
	}
	if !b.reserve(n, true) {
		return
	}

	for n > 0 {
		idx := b.bitPos >> 3
		avail := 8 - b.bitPos&7
		take := min(avail, n)
		shift := uint(avail - take)

		mask := byte(1<<take-1) << shift
		chunk := byte(val>>(n-take)) << shift & mask
		b.data[idx] = b.data[idx]&^mask | chunk

		b.bitPos += take
		n -= take
	}
}

// PutReserved writes n reserved bits, all set to one.
func (b *Buffer) PutReserved(n int) {
	for n > 32 {
		b.PutBits(0xFFFFFFFF, 32)
		n -= 32
	}
	if n > 0 {
		b.PutBits(0xFFFFFFFF, n)
	}
}

// PutUInt8 writes an 8-bit unsigned integer.
func (b *Buffer) PutUInt8(v uint8) {
	if !b.ByteAligned() {
		b.PutBits(uint32(v), 8)
		return
	}
	if b.reserve(8, true) {
		b.data[b.bitPos>>3] = v
		b.bitPos += 8
	}
}

// PutUInt16 writes a big-endian 16-bit unsigned integer.
func (b *Buffer) PutUInt16(v uint16) {
	if !b.ByteAligned() {
		b.PutBits(uint32(v), 16)
		return
	}
	if b.reserve(16, true) {
		b.engine.PutUint16(b.data[b.bitPos>>3:], v)
		b.bitPos += 16
	}
}

// PutUInt24 writes the low 24 bits of v, big-endian.
func (b *Buffer) PutUInt24(v uint32) {
	if !b.ByteAligned() {
		b.PutBits(v, 24)
		return
	}
	if b.reserve(24, true) {
		endian.PutUint24(b.data[b.bitPos>>3:], v)
		b.bitPos += 24
	}
}

// PutUInt32 writes a big-endian 32-bit unsigned integer.
func (b *Buffer) PutUInt32(v uint32) {
	if !b.ByteAligned() {
		b.PutBits(v, 32)
		return
	}
	if b.reserve(32, true) {
		b.engine.PutUint32(b.data[b.bitPos>>3:], v)
		b.bitPos += 32
	}
}

// PutBytes writes data. Nothing is written if data does not fit entirely.
func (b *Buffer) PutBytes(data []byte) {
	if !b.reserve(len(data)*8, true) {
		return
	}

	if b.ByteAligned() {
		copy(b.data[b.bitPos>>3:], data)
		b.bitPos += len(data) * 8

		return
	}
	for _, v := range data {
		b.PutBits(uint32(v), 8)
	}
}

// PutBCD writes v, in [0, 99], as a 2-digit binary-coded decimal byte.
func (b *Buffer) PutBCD(v int) {
	raw, err := sitime.EncodeBCD(v)
	if err != nil {
		b.SetUserError(err)
		return
	}
	b.PutUInt8(raw)
}

// PutFullMJD writes t as a 5-byte MJD+BCD timestamp. When jst is true the
// instant is encoded as JST civil time.
func (b *Buffer) PutFullMJD(t time.Time, jst bool) {
	raw, err := sitime.EncodeMJD(t, jst)
	if err != nil {
		b.SetUserError(err)
		return
	}
	b.PutBytes(raw[:])
}
