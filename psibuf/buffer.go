package psibuf

import (
	"fmt"

	"github.com/arloliu/sitab/endian"
	"github.com/arloliu/sitab/errs"
)

// Buffer is a bit cursor over a byte slice.
type Buffer struct {
	data     []byte
	engine   endian.EndianEngine
	bitPos   int   // read or write position in bits
	bitLen   int   // total size in bits
	err      error // first latched error, never cleared
	readOnly bool
}

// NewReader creates a read cursor over data. The data is not copied.
func NewReader(data []byte) *Buffer {
	return &Buffer{
		data:     data,
		engine:   endian.Wire(),
		bitLen:   len(data) * 8,
		readOnly: true,
	}
}

// NewWriter creates a write cursor whose capacity is len(data).
//
// Bits are written in place; Bytes returns the written prefix. The buffer does
// not grow: writing past the end latches ErrBufferOverflow.
func NewWriter(data []byte) *Buffer {
	return &Buffer{
		data:   data,
		engine: endian.Wire(),
		bitLen: len(data) * 8,
	}
}

// Err returns the latched error, or nil.
func (b *Buffer) Err() error {
	return b.err
}

// HasError reports whether an error has been latched.
func (b *Buffer) HasError() bool {
	return b.err != nil
}

// SetUserError latches err as if the buffer itself had failed.
//
// It is used by higher-level decoders to report structural errors through the
// same channel as buffer underflows. The first error wins.
func (b *Buffer) SetUserError(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// IsReader reports whether b was created with NewReader.
func (b *Buffer) IsReader() bool {
	return b.readOnly
}

// Position returns the current position in bits.
func (b *Buffer) Position() int {
	return b.bitPos
}

// Size returns the total capacity in bytes.
func (b *Buffer) Size() int {
	return len(b.data)
}

// ByteAligned reports whether the cursor sits on a byte boundary.
func (b *Buffer) ByteAligned() bool {
	return b.bitPos&7 == 0
}

// RemainingBits returns the number of bits left to read or write.
func (b *Buffer) RemainingBits() int {
	return b.bitLen - b.bitPos
}

// RemainingBytes returns the number of whole bytes left to read or write.
func (b *Buffer) RemainingBytes() int {
	return (b.bitLen - b.bitPos) >> 3
}

// Bytes returns the written prefix of a writer, including a trailing partial
// byte, or the whole underlying data of a reader.
func (b *Buffer) Bytes() []byte {
	if b.readOnly {
		return b.data
	}

	return b.data[:(b.bitPos+7)>>3]
}

// Validate returns the latched error, or ErrTrailingData when a reader has not
// consumed all of its bits. A deserialization is valid only if Validate
// returns nil.
func (b *Buffer) Validate() error {
	if b.err != nil {
		return b.err
	}
	if b.readOnly && b.bitPos != b.bitLen {
		return fmt.Errorf("%w: %d bits left", errs.ErrTrailingData, b.bitLen-b.bitPos)
	}

	return nil
}

// reserve checks that n more bits can be accessed in the buffer's mode and
// latches the matching error otherwise.
func (b *Buffer) reserve(n int, write bool) bool {
	if b.err != nil {
		return false
	}

	switch {
	case n < 0:
		b.err = fmt.Errorf("%w: %d", errs.ErrInvalidBitCount, n)
	case write && b.readOnly:
		b.err = errs.ErrReadOnlyBuffer
	case !write && !b.readOnly:
		b.err = errs.ErrWriteOnlyBuffer
	case b.bitPos+n > b.bitLen && write:
		b.err = fmt.Errorf("%w: %d bits requested, %d left", errs.ErrBufferOverflow, n, b.bitLen-b.bitPos)
	case b.bitPos+n > b.bitLen:
		b.err = fmt.Errorf("%w: %d bits requested, %d left", errs.ErrBufferUnderflow, n, b.bitLen-b.bitPos)
	default:
		return true
	}

	return false
}
