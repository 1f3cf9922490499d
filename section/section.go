package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/sitab/endian"
	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/internal/hash"
	"github.com/arloliu/sitab/psibuf"
)

// CRCMode selects how Parse treats the stored CRC32.
type CRCMode uint8

const (
	// CRCCheck rejects sections whose stored CRC32 is wrong.
	CRCCheck CRCMode = iota
	// CRCIgnore accepts the stored CRC32 as is and writes it back unchanged.
	CRCIgnore
	// CRCCompute accepts any stored CRC32 and recomputes it on output.
	CRCCompute
)

// String returns the mode name.
func (m CRCMode) String() string {
	switch m {
	case CRCCheck:
		return "check"
	case CRCIgnore:
		return "ignore"
	case CRCCompute:
		return "compute"
	default:
		return fmt.Sprintf("CRCMode(%d)", uint8(m))
	}
}

// ParseCRCMode parses a mode name as returned by String.
func ParseCRCMode(name string) (CRCMode, error) {
	switch name {
	case "", "check":
		return CRCCheck, nil
	case "ignore":
		return CRCIgnore, nil
	case "compute":
		return CRCCompute, nil
	default:
		return CRCCheck, fmt.Errorf("%w: unknown CRC mode %q", errs.ErrInvalidConfig, name)
	}
}

// ShortCRCFunc reports whether short sections of a table id end with a CRC32.
type ShortCRCFunc func(tableID uint8) bool

// Section is one framed section.
type Section struct {
	Header  Header
	Payload []byte
	// WithCRC is always true for long sections.
	WithCRC bool

	storedCRC uint32
	keepCRC   bool
}

// New builds a section from a header and payload. The payload is copied.
//
// Returns:
//   - Section: the framed section
//   - error: ErrInvalidSection if the header is inconsistent or the section
//     would exceed MaxSize
func New(h Header, payload []byte, withCRC bool) (Section, error) {
	s := Section{Header: h, Payload: bytes.Clone(payload), WithCRC: withCRC || h.Long}
	if err := h.validate(); err != nil {
		return Section{}, err
	}
	if s.Size() > MaxSize(h.TableID) {
		return Section{}, fmt.Errorf("%w: table id 0x%02X section of %d bytes exceeds %d", errs.ErrInvalidSection, h.TableID, s.Size(), MaxSize(h.TableID))
	}

	return s, nil
}

// Size returns the total section size.
func (s Section) Size() int {
	size := s.Header.Size() + len(s.Payload)
	if s.WithCRC {
		size += CRCSize
	}

	return size
}

// AppendTo appends the binary section to dst.
func (s Section) AppendTo(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, s.Size())...)
	out := dst[start:]

	buf := psibuf.NewWriter(out)
	s.Header.write(buf, s.Size()-ShortHeaderSize)
	buf.PutBytes(s.Payload)
	if s.WithCRC {
		crc := s.storedCRC
		if !s.keepCRC {
			crc = CRC32(out[:len(out)-CRCSize])
		}
		buf.PutUInt32(crc)
	}

	return dst
}

// Bytes returns the binary section.
func (s Section) Bytes() []byte {
	return s.AppendTo(nil)
}

// Fingerprint returns a 64-bit hash of the binary section.
func (s Section) Fingerprint() uint64 {
	return hash.Fingerprint(s.Bytes())
}

// Parse reads the section at the start of data.
//
// Parameters:
//   - data: binary data starting with a section header
//   - shortCRC: tells whether short sections of a table id carry a CRC32,
//     nil means none does
//   - mode: handling of the stored CRC32
//
// Returns:
//   - Section: the parsed section; its payload does not alias data
//   - int: number of bytes consumed
//   - error: ErrInvalidSection for truncated or malformed framing,
//     ErrCRCMismatch in CRCCheck mode
func Parse(data []byte, shortCRC ShortCRCFunc, mode CRCMode) (Section, int, error) {
	if len(data) < ShortHeaderSize {
		return Section{}, 0, fmt.Errorf("%w: %d bytes, truncated header", errs.ErrInvalidSection, len(data))
	}

	var h Header
	buf := psibuf.NewReader(data)
	length := h.read(buf)
	total := ShortHeaderSize + length

	switch {
	case total > MaxSize(h.TableID):
		return Section{}, 0, fmt.Errorf("%w: table id 0x%02X section of %d bytes exceeds %d", errs.ErrInvalidSection, h.TableID, total, MaxSize(h.TableID))
	case total > len(data):
		return Section{}, 0, fmt.Errorf("%w: table id 0x%02X section of %d bytes, %d available", errs.ErrInvalidSection, h.TableID, total, len(data))
	case h.Long && total < LongHeaderSize+CRCSize:
		return Section{}, 0, fmt.Errorf("%w: long section of %d bytes", errs.ErrInvalidSection, total)
	case buf.HasError():
		return Section{}, 0, fmt.Errorf("%w: %w", errs.ErrInvalidSection, buf.Err())
	}

	withCRC := h.Long || (shortCRC != nil && shortCRC(h.TableID))
	end := total
	if withCRC {
		end -= CRCSize
		if end < h.Size() {
			return Section{}, 0, fmt.Errorf("%w: table id 0x%02X section too short for CRC32", errs.ErrInvalidSection, h.TableID)
		}
	}

	s := Section{
		Header:  h,
		Payload: bytes.Clone(data[h.Size():end]),
		WithCRC: withCRC,
	}
	if withCRC {
		stored := endian.Wire().Uint32(data[end:total])
		switch mode {
		case CRCCheck:
			if computed := CRC32(data[:end]); computed != stored {
				return Section{}, 0, fmt.Errorf("%w: table id 0x%02X, stored 0x%08X, computed 0x%08X", errs.ErrCRCMismatch, h.TableID, stored, computed)
			}
		case CRCIgnore:
			s.storedCRC, s.keepCRC = stored, true
		case CRCCompute:
		}
	}

	return s, total, nil
}

// ParseAll splits data into consecutive sections.
func ParseAll(data []byte, shortCRC ShortCRCFunc, mode CRCMode) ([]Section, error) {
	var out []Section
	for offset := 0; offset < len(data); {
		s, n, err := Parse(data[offset:], shortCRC, mode)
		if err != nil {
			return out, fmt.Errorf("section at offset %d: %w", offset, err)
		}
		out = append(out, s)
		offset += n
	}

	return out, nil
}
