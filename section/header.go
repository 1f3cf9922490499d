package section

import (
	"fmt"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/psibuf"
)

// Header holds the section header fields. The long-form fields are only
// meaningful when Long is set.
type Header struct {
	TableID uint8
	Long    bool
	Private bool

	TableIDExtension  uint16
	Version           uint8
	Current           bool
	SectionNumber     uint8
	LastSectionNumber uint8
}

// ShortHeader returns the header of a short section.
func ShortHeader(tableID uint8) Header {
	return Header{TableID: tableID, Private: tableID >= FirstPrivateTableID}
}

// LongHeader returns the header of section 0 of a single-section long table.
func LongHeader(tableID uint8, extension uint16, version uint8, current bool) Header {
	return Header{
		TableID:          tableID,
		Long:             true,
		Private:          tableID >= FirstPrivateTableID,
		TableIDExtension: extension,
		Version:          version,
		Current:          current,
	}
}

// Size returns the header size.
func (h Header) Size() int {
	if h.Long {
		return LongHeaderSize
	}

	return ShortHeaderSize
}

func (h Header) validate() error {
	if h.Long && h.Version > 31 {
		return fmt.Errorf("%w: version %d exceeds 31", errs.ErrInvalidSection, h.Version)
	}
	if h.Long && h.SectionNumber > h.LastSectionNumber {
		return fmt.Errorf("%w: section number %d after last section %d", errs.ErrInvalidSection, h.SectionNumber, h.LastSectionNumber)
	}

	return nil
}

// write serializes the header with the given section_length.
func (h Header) write(buf *psibuf.Buffer, sectionLength int) {
	buf.PutUInt8(h.TableID)
	buf.PutBool(h.Long)
	buf.PutBool(h.Private)
	buf.PutReserved(2)
	buf.PutBits(uint32(sectionLength), 12) //nolint:gosec // G115: bounded by MaxSize
	if !h.Long {
		return
	}
	buf.PutUInt16(h.TableIDExtension)
	buf.PutReserved(2)
	buf.PutBits(uint32(h.Version), 5)
	buf.PutBool(h.Current)
	buf.PutUInt8(h.SectionNumber)
	buf.PutUInt8(h.LastSectionNumber)
}

// read parses a header and returns the section_length field.
func (h *Header) read(buf *psibuf.Buffer) int {
	h.TableID = buf.GetUInt8()
	h.Long = buf.GetBool()
	h.Private = buf.GetBool()
	buf.SkipBits(2)
	length := int(buf.GetBits(12))
	if !h.Long || buf.HasError() {
		return length
	}
	h.TableIDExtension = buf.GetUInt16()
	buf.SkipBits(2)
	h.Version = uint8(buf.GetBits(5)) //nolint:gosec // G115: 5 bits
	h.Current = buf.GetBool()
	h.SectionNumber = buf.GetUInt8()
	h.LastSectionNumber = buf.GetUInt8()

	return length
}
