package tables

import (
	"time"

	"github.com/arloliu/sitab/descriptor"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/xmlattr"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/psibuf"
	"github.com/arloliu/sitab/section"
	"github.com/beevik/etree"
)

// TOTXMLName is the XML element name of the TOT.
const TOTXMLName = "TOT"

func init() {
	Register(Registration{
		TableID:   format.TIDTOT,
		XMLName:   TOTXMLName,
		Standards: format.StandardDVB,
		ShortCRC:  true,
		New:       func() Table { return NewTOT() },
	})
}

// TOT is the DVB Time Offset Table.
//
// The local_time_offset descriptors of the wire format are flattened into
// Regions; Descriptors holds every other descriptor.
type TOT struct {
	base

	UTCTime     time.Time
	Regions     []descriptor.Region
	Descriptors descriptor.List
}

var _ Table = (*TOT)(nil)

// NewTOT creates an empty TOT.
func NewTOT() *TOT {
	return &TOT{}
}

// TableID returns 0x73.
func (*TOT) TableID() uint8 { return format.TIDTOT }

// XMLName returns "TOT".
func (*TOT) XMLName() string { return TOTXMLName }

// DefiningStandards returns DVB.
func (*TOT) DefiningStandards() format.Standards { return format.StandardDVB }

func (t *TOT) clearContent() {
	t.UTCTime = time.Time{}
	t.Regions = nil
	t.Descriptors.Clear()
}

// Clear resets all fields and returns to Empty.
func (t *TOT) Clear() {
	t.clearContent()
	t.state = StateEmpty
}

// SectionHeader returns the short TOT section header.
func (*TOT) SectionHeader() section.Header {
	return section.ShortHeader(format.TIDTOT)
}

// SetSectionHeader does nothing, a short header carries no table field.
func (*TOT) SetSectionHeader(section.Header) {}

// LocalTime returns the UTC time shifted by the current offset of region.
func (t *TOT) LocalTime(region descriptor.Region) time.Time {
	return t.UTCTime.Add(time.Duration(region.TimeOffset) * time.Minute)
}

// Deserialize decodes a TOT section payload, CRC32 excluded.
//
// With the Japan profile the encoded time is JST and is converted to UTC.
func (t *TOT) Deserialize(ctx *profile.Context, buf *psibuf.Buffer) error {
	t.clearContent()

	t.UTCTime = buf.GetFullMJD(ctx.UsesJST())

	var all descriptor.List
	all.ReadWithLength(buf)

	err := buf.Validate()
	if err == nil {
		t.Regions, t.Descriptors = descriptor.SplitRegions(ctx, &all)
	}

	return t.finish(TOTXMLName, err, t.clearContent)
}

// Serialize encodes the TOT into buf.
//
// Regions are packed into local_time_offset descriptors placed before the
// other descriptors. Descriptors that do not fit in the section are dropped
// with a warning.
func (t *TOT) Serialize(ctx *profile.Context, buf *psibuf.Buffer) error {
	if err := t.checkSerializable(TOTXMLName); err != nil {
		return err
	}

	buf.PutFullMJD(t.UTCTime, ctx.UsesJST())

	list, err := descriptor.JoinRegions(ctx, t.Regions, &t.Descriptors)
	if err != nil {
		return err
	}

	next, _ := list.WritePartialWithLength(buf, 0)
	for i := next; i < list.Len(); i++ {
		ctx.Logger().Warn().
			Uint8("tag", list.At(i).Tag).
			Int("size", list.At(i).Size()).
			Msg("TOT descriptor dropped, section full")
	}

	return buf.Err()
}

// BuildXML writes UTC_time, one local_time_offset_descriptor per group of
// descriptor.MaxRegions regions, then the other descriptors.
func (t *TOT) BuildXML(ctx *profile.Context, el *etree.Element) {
	xmlattr.SetDateTime(el, "UTC_time", t.UTCTime)
	for _, lto := range descriptor.PackRegions(t.Regions) {
		lto.BuildXML(ctx, el.CreateElement(lto.XMLName()))
	}
	t.Descriptors.ToXML(ctx, el)
}

// AnalyzeXML loads the TOT from el. Regions of all local_time_offset
// descriptors are merged in document order.
func (t *TOT) AnalyzeXML(ctx *profile.Context, el *etree.Element) error {
	t.clearContent()

	return t.finish(TOTXMLName, t.analyzeXML(ctx, el), t.clearContent)
}

func (t *TOT) analyzeXML(ctx *profile.Context, el *etree.Element) error {
	utc, err := xmlattr.GetDateTime(el, "UTC_time", true)
	if err != nil {
		return err
	}

	var all descriptor.List
	if err := all.FromXML(ctx, el.ChildElements()); err != nil {
		return err
	}

	t.UTCTime = utc
	t.Regions, t.Descriptors = descriptor.SplitRegions(ctx, &all)

	return nil
}
