package tables

import (
	"fmt"
	"time"

	"github.com/arloliu/sitab/descriptor"
	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/xmlattr"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/psibuf"
	"github.com/arloliu/sitab/section"
	"github.com/arloliu/sitab/sitime"
	"github.com/beevik/etree"
)

const (
	// STTXMLName is the XML element name of the STT.
	STTXMLName = "STT"
	// STTFixedSize is the size of the STT fields preceding the descriptors.
	STTFixedSize = 8

	maxDSDayOfMonth = 31
	maxDSHour       = 23
	maxVersion      = 31
)

func init() {
	Register(Registration{
		TableID:   format.TIDSTT,
		XMLName:   STTXMLName,
		Standards: format.StandardATSC,
		Long:      true,
		New:       func() Table { return NewSTT() },
	})
}

// STT is the ATSC System Time Table.
//
// SystemTime counts GPS seconds; zero means the time is not set. DSDayOfMonth
// and DSHour schedule the next daylight saving switch, a zero day meaning none
// is scheduled.
type STT struct {
	base

	// Version and Current come from the long section header.
	Version uint8
	Current bool

	ProtocolVersion uint8
	SystemTime      uint32
	GPSUTCOffset    uint8
	DSStatus        bool
	DSDayOfMonth    uint8
	DSHour          uint8
	Descriptors     descriptor.List
}

var _ Table = (*STT)(nil)

// NewSTT creates an empty STT.
func NewSTT() *STT {
	return &STT{Current: true}
}

// TableID returns 0xCD.
func (*STT) TableID() uint8 { return format.TIDSTT }

// XMLName returns "STT".
func (*STT) XMLName() string { return STTXMLName }

// DefiningStandards returns ATSC.
func (*STT) DefiningStandards() format.Standards { return format.StandardATSC }

func (t *STT) clearContent() {
	t.Version = 0
	t.Current = true
	t.ProtocolVersion = 0
	t.SystemTime = 0
	t.GPSUTCOffset = 0
	t.DSStatus = false
	t.DSDayOfMonth = 0
	t.DSHour = 0
	t.Descriptors.Clear()
}

// Clear resets all fields and returns to Empty.
func (t *STT) Clear() {
	t.clearContent()
	t.state = StateEmpty
}

// SectionHeader returns the header of the single STT section. The table id
// extension is always zero.
func (t *STT) SectionHeader() section.Header {
	return section.LongHeader(format.TIDSTT, 0, t.Version, t.Current)
}

// SetSectionHeader loads version and current_next_indicator.
func (t *STT) SetSectionHeader(h section.Header) {
	t.Version = h.Version
	t.Current = h.Current
}

// UTCTime converts SystemTime to UTC. An unset time returns sitime.Epoch.
func (t *STT) UTCTime() time.Time {
	return sitime.GPSToUTC(t.SystemTime, t.GPSUTCOffset)
}

// SetUTCTime sets SystemTime from a UTC instant, using the current
// GPSUTCOffset. sitime.Epoch clears the time.
func (t *STT) SetUTCTime(utc time.Time) error {
	v, err := sitime.UTCToGPS(utc, t.GPSUTCOffset)
	if err != nil {
		return err
	}
	t.SystemTime = v

	return nil
}

// Deserialize decodes an STT section payload.
//
// Any underflow, structural descriptor error or trailing byte leaves the table
// cleared and Invalid.
func (t *STT) Deserialize(_ *profile.Context, buf *psibuf.Buffer) error {
	version, current := t.Version, t.Current
	t.clearContent()
	t.Version, t.Current = version, current

	t.ProtocolVersion = buf.GetUInt8()
	t.SystemTime = buf.GetUInt32()
	t.GPSUTCOffset = buf.GetUInt8()
	t.DSStatus = buf.GetBool()
	buf.SkipBits(2)
	t.DSDayOfMonth = uint8(buf.GetBits(5)) //nolint:gosec // G115: 5 bits
	t.DSHour = buf.GetUInt8()
	t.Descriptors.ReadAll(buf)

	return t.finish(STTXMLName, buf.Validate(), t.clearContent)
}

// Serialize encodes the STT into buf.
//
// The STT may not span several sections: when the fixed fields and all
// descriptors do not fit in buf, ErrTooManySections is returned and nothing
// is written.
func (t *STT) Serialize(ctx *profile.Context, buf *psibuf.Buffer) error {
	if err := t.checkSerializable(STTXMLName); err != nil {
		return err
	}
	if t.DSDayOfMonth > maxDSDayOfMonth {
		return fmt.Errorf("%w: STT DS_day_of_month %d exceeds %d", errs.ErrInvalidTable, t.DSDayOfMonth, maxDSDayOfMonth)
	}
	if size := STTFixedSize + t.Descriptors.BinarySize(); size > buf.RemainingBytes() {
		return fmt.Errorf("%w: STT needs %d bytes, section payload holds %d", errs.ErrTooManySections, size, buf.RemainingBytes())
	}

	buf.PutUInt8(t.ProtocolVersion)
	buf.PutUInt32(t.SystemTime)
	buf.PutUInt8(t.GPSUTCOffset)
	buf.PutBool(t.DSStatus)
	buf.PutReserved(2)
	buf.PutBits(uint32(t.DSDayOfMonth), 5)
	buf.PutUInt8(t.DSHour)

	next, _ := t.Descriptors.WritePartial(buf, 0)
	if next < t.Descriptors.Len() {
		ctx.Logger().Warn().Int("dropped", t.Descriptors.Len()-next).Msg("STT descriptors truncated")
	}

	return buf.Err()
}

// BuildXML writes the STT attributes and descriptors.
//
// DS_day_of_month is omitted when zero, DS_hour when both it and
// DS_day_of_month are zero.
func (t *STT) BuildXML(ctx *profile.Context, el *etree.Element) {
	xmlattr.SetInt(el, "version", t.Version)
	xmlattr.SetBool(el, "current", t.Current)
	xmlattr.SetInt(el, "protocol_version", t.ProtocolVersion)
	xmlattr.SetInt(el, "system_time", t.SystemTime)
	xmlattr.SetInt(el, "GPS_UTC_offset", t.GPSUTCOffset)
	xmlattr.SetBool(el, "DS_status", t.DSStatus)
	if t.DSDayOfMonth > 0 {
		xmlattr.SetInt(el, "DS_day_of_month", t.DSDayOfMonth&0x1F)
	}
	if t.DSDayOfMonth > 0 || t.DSHour > 0 {
		xmlattr.SetInt(el, "DS_hour", t.DSHour)
	}
	t.Descriptors.ToXML(ctx, el)
}

// AnalyzeXML loads the STT from el. Missing optional attributes take their
// default value; a value out of range is an error, never clamped.
func (t *STT) AnalyzeXML(ctx *profile.Context, el *etree.Element) error {
	t.clearContent()

	return t.finish(STTXMLName, t.analyzeXML(ctx, el), t.clearContent)
}

func (t *STT) analyzeXML(ctx *profile.Context, el *etree.Element) error {
	var err error
	if t.Version, err = xmlattr.GetInt[uint8](el, "version", false, 0, 0, maxVersion); err != nil {
		return err
	}
	if t.Current, err = xmlattr.GetBool(el, "current", false, true); err != nil {
		return err
	}
	if t.ProtocolVersion, err = xmlattr.GetInt[uint8](el, "protocol_version", false, 0, 0, 0xFF); err != nil {
		return err
	}
	if t.SystemTime, err = xmlattr.GetInt[uint32](el, "system_time", true, 0, 0, 0xFFFFFFFF); err != nil {
		return err
	}
	if t.GPSUTCOffset, err = xmlattr.GetInt[uint8](el, "GPS_UTC_offset", true, 0, 0, 0xFF); err != nil {
		return err
	}
	if t.DSStatus, err = xmlattr.GetBool(el, "DS_status", true, false); err != nil {
		return err
	}
	if t.DSDayOfMonth, err = xmlattr.GetInt[uint8](el, "DS_day_of_month", false, 0, 0, maxDSDayOfMonth); err != nil {
		return err
	}
	if t.DSHour, err = xmlattr.GetInt[uint8](el, "DS_hour", false, 0, 0, maxDSHour); err != nil {
		return err
	}

	return t.Descriptors.FromXML(ctx, el.ChildElements())
}
