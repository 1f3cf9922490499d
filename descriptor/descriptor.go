package descriptor

import (
	"bytes"
	"fmt"

	"github.com/arloliu/sitab/errs"
)

const (
	// HeaderSize is the size of the tag and length fields.
	HeaderSize = 2
	// MaxPayloadSize is the largest payload an 8-bit length can describe.
	MaxPayloadSize = 255
)

// Descriptor is one tagged, length-prefixed byte-run.
type Descriptor struct {
	Tag     uint8
	Payload []byte
}

// New creates a descriptor holding a copy of payload.
func New(tag uint8, payload []byte) (Descriptor, error) {
	d := Descriptor{Tag: tag}
	if len(payload) > 0 {
		d.Payload = bytes.Clone(payload)
	}
	if len(payload) > MaxPayloadSize {
		return d, fmt.Errorf("%w: tag 0x%02X, %d bytes", errs.ErrDescriptorTooLarge, tag, len(payload))
	}

	return d, nil
}

// Size returns the wire size of the descriptor, header included.
func (d Descriptor) Size() int {
	return HeaderSize + len(d.Payload)
}

// IsValid reports whether the payload fits the 8-bit length field and the
// minimum size registered for the tag.
func (d Descriptor) IsValid() bool {
	return len(d.Payload) <= MaxPayloadSize && len(d.Payload) >= MinPayloadSize(d.Tag)
}

// Bytes returns the wire form of the descriptor.
func (d Descriptor) Bytes() []byte {
	out := make([]byte, 0, d.Size())
	out = append(out, d.Tag, byte(len(d.Payload))) //nolint:gosec // G115: length checked by IsValid

	return append(out, d.Payload...)
}

// Equal reports whether d and other have the same tag and payload.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.Tag == other.Tag && bytes.Equal(d.Payload, other.Payload)
}
