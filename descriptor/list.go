package descriptor

import (
	"fmt"
	"iter"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/psibuf"
)

// maxLoopLength is the largest value of a 12-bit descriptor loop length.
const maxLoopLength = 0x0FFF

// List is an ordered descriptor sequence. The zero value is an empty list.
//
// A List belongs to the table that holds it but keeps no reference to it;
// contextual decoding receives a profile.Context explicitly.
type List struct {
	descs []Descriptor
}

// Len returns the number of descriptors.
func (l *List) Len() int {
	return len(l.descs)
}

// At returns the descriptor at index i.
func (l *List) At(i int) Descriptor {
	return l.descs[i]
}

// All iterates over the descriptors in wire order.
func (l *List) All() iter.Seq2[int, Descriptor] {
	return func(yield func(int, Descriptor) bool) {
		for i, d := range l.descs {
			if !yield(i, d) {
				return
			}
		}
	}
}

// Add appends a copy of d. Descriptors that cannot be encoded are rejected.
func (l *List) Add(d Descriptor) error {
	nd, err := New(d.Tag, d.Payload)
	if err != nil {
		return err
	}
	l.descs = append(l.descs, nd)

	return nil
}

// AddTyped serializes t and appends the result.
func (l *List) AddTyped(ctx *profile.Context, t Typed) error {
	d, err := t.Serialize(ctx)
	if err != nil {
		return err
	}
	l.descs = append(l.descs, d)

	return nil
}

// AddList appends all descriptors of other.
func (l *List) AddList(other *List) {
	l.descs = append(l.descs, other.descs...)
}

// Clear removes all descriptors.
func (l *List) Clear() {
	l.descs = nil
}

// Search returns the index of the first descriptor with the given tag at or
// after start, or Len() when there is none.
func (l *List) Search(tag uint8, start int) int {
	for i := max(start, 0); i < len(l.descs); i++ {
		if l.descs[i].Tag == tag {
			return i
		}
	}

	return len(l.descs)
}

// BinarySize returns the wire size of the whole list.
func (l *List) BinarySize() int {
	size := 0
	for _, d := range l.descs {
		size += d.Size()
	}

	return size
}

// Equal reports whether both lists hold the same descriptors in the same order.
func (l *List) Equal(other *List) bool {
	if len(l.descs) != len(other.descs) {
		return false
	}
	for i := range l.descs {
		if !l.descs[i].Equal(other.descs[i]) {
			return false
		}
	}

	return true
}

// Read appends the descriptors found in the next length bytes of buf.
//
// A descriptor header or payload crossing the end of the loop is a structural
// error latched into buf as ErrInvalidDescriptor.
func (l *List) Read(buf *psibuf.Buffer, length int) {
	if length > buf.RemainingBytes() {
		buf.SetUserError(fmt.Errorf("%w: loop length %d, %d bytes left", errs.ErrInvalidDescriptor, length, buf.RemainingBytes()))
		return
	}

	for length > 0 && !buf.HasError() {
		if length < HeaderSize {
			buf.SetUserError(fmt.Errorf("%w: %d stray bytes at end of loop", errs.ErrInvalidDescriptor, length))
			return
		}

		tag := buf.GetUInt8()
		size := int(buf.GetUInt8())
		length -= HeaderSize
		if size > length {
			buf.SetUserError(fmt.Errorf("%w: tag 0x%02X length %d, %d bytes left in loop", errs.ErrInvalidDescriptor, tag, size, length))
			return
		}

		payload := buf.GetBytes(size)
		length -= size
		if buf.HasError() {
			return
		}

		d := Descriptor{Tag: tag}
		if size > 0 {
			d.Payload = payload
		}
		l.descs = append(l.descs, d)
	}
}

// ReadAll appends the descriptors filling the rest of buf.
func (l *List) ReadAll(buf *psibuf.Buffer) {
	l.Read(buf, buf.RemainingBytes())
}

// ReadWithLength reads a 4-bit reserved field and a 12-bit loop length, then
// the descriptors of the loop.
func (l *List) ReadWithLength(buf *psibuf.Buffer) {
	buf.SkipBits(4)
	length := int(buf.GetBits(12))
	if buf.HasError() {
		return
	}
	l.Read(buf, length)
}

// fit returns the end index and total size of the longest run of descriptors
// starting at start that fits in room bytes.
func (l *List) fit(start, room int) (end, size int) {
	end = max(start, 0)
	for end < len(l.descs) && size+l.descs[end].Size() <= room {
		size += l.descs[end].Size()
		end++
	}

	return end, size
}

func (l *List) write(buf *psibuf.Buffer, start, end int) {
	for _, d := range l.descs[start:end] {
		buf.PutUInt8(d.Tag)
		buf.PutUInt8(uint8(len(d.Payload))) //nolint:gosec // G115: enforced by Add
		buf.PutBytes(d.Payload)
	}
}

// WritePartial writes the descriptors from index start that fit in buf,
// never splitting one.
//
// Returns:
//   - next: index of the first descriptor not written (Len() when all fit)
//   - size: number of bytes written
func (l *List) WritePartial(buf *psibuf.Buffer, start int) (next, size int) {
	next, size = l.fit(start, buf.RemainingBytes())
	l.write(buf, max(start, 0), next)

	return next, size
}

// WritePartialWithLength writes a 4-bit reserved field (all ones) and a
// 12-bit loop length, followed by the descriptors from index start that fit
// in the rest of buf. The length field covers exactly the descriptors written.
//
// When buf cannot hold the length field, ErrBufferOverflow is latched and
// nothing is written.
func (l *List) WritePartialWithLength(buf *psibuf.Buffer, start int) (next, size int) {
	if buf.RemainingBytes() < 2 {
		buf.SetUserError(fmt.Errorf("%w: no room for descriptor loop length", errs.ErrBufferOverflow))
		return start, 0
	}

	next, size = l.fit(start, min(buf.RemainingBytes()-2, maxLoopLength))
	buf.PutReserved(4)
	buf.PutBits(uint32(size), 12) //nolint:gosec // G115: size <= maxLoopLength
	l.write(buf, max(start, 0), next)

	return next, size
}
