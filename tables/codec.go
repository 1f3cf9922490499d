package tables

import (
	"fmt"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/internal/pool"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/psibuf"
	"github.com/arloliu/sitab/section"
	"github.com/beevik/etree"
)

// Encode serializes a table into one section.
//
// The payload is written into a pooled buffer whose capacity is the largest
// payload the table's section can carry.
//
// Returns:
//   - section.Section: the framed section
//   - error: ErrUnknownTable, ErrInvalidTable, ErrTooManySections or a
//     serialization error
func Encode(ctx *profile.Context, t Table) (section.Section, error) {
	reg, ok := Lookup(t.TableID())
	if !ok {
		return section.Section{}, fmt.Errorf("%w: table id 0x%02X", errs.ErrUnknownTable, t.TableID())
	}

	h := t.SectionHeader()
	maxPayload := section.MaxPayloadSize(reg.TableID, h.Long, reg.ShortCRC)

	bb := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(bb)
	bb.ExtendOrGrow(maxPayload)

	buf := psibuf.NewWriter(bb.B[:maxPayload])
	if err := t.Serialize(ctx, buf); err != nil {
		return section.Section{}, err
	}
	if err := buf.Err(); err != nil {
		return section.Section{}, fmt.Errorf("%w: %s: %w", errs.ErrInvalidTable, reg.XMLName, err)
	}

	return section.New(h, buf.Bytes(), reg.ShortCRC)
}

// Decode deserializes the table carried by one section. The context gains
// the standards of the table.
//
// On a decoding error the returned table is not nil and is Invalid.
func Decode(ctx *profile.Context, sec section.Section) (Table, error) {
	reg, ok := Lookup(sec.Header.TableID)
	if !ok {
		return nil, fmt.Errorf("%w: table id 0x%02X", errs.ErrUnknownTable, sec.Header.TableID)
	}
	if sec.Header.Long != reg.Long {
		return nil, fmt.Errorf("%w: %s in a section with syntax indicator %t", errs.ErrInvalidSection, reg.XMLName, sec.Header.Long)
	}
	if reg.Long && (sec.Header.SectionNumber != 0 || sec.Header.LastSectionNumber != 0) {
		return nil, fmt.Errorf("%w: %s section %d of %d", errs.ErrTooManySections, reg.XMLName, sec.Header.SectionNumber, sec.Header.LastSectionNumber)
	}

	ctx.AddStandards(reg.Standards)

	t := reg.New()
	t.SetSectionHeader(sec.Header)
	err := t.Deserialize(ctx, psibuf.NewReader(sec.Payload))

	return t, err
}

// ToXML appends the XML element of a table to parent.
func ToXML(ctx *profile.Context, parent *etree.Element, t Table) (*etree.Element, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: cannot convert invalid %s to XML", errs.ErrInvalidTable, t.XMLName())
	}

	el := parent.CreateElement(t.XMLName())
	t.BuildXML(ctx, el)

	return el, nil
}

// FromXML loads the table described by an XML element. The context gains
// the standards of the table.
//
// On an analysis error the returned table is not nil and is Invalid.
func FromXML(ctx *profile.Context, el *etree.Element) (Table, error) {
	reg, ok := LookupXML(el.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: <%s>", errs.ErrUnknownTable, el.Tag)
	}

	ctx.AddStandards(reg.Standards)

	t := reg.New()
	err := t.AnalyzeXML(ctx, el)

	return t, err
}
