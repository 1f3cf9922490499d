package descriptor

import (
	"fmt"
	"time"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/xmlattr"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/psibuf"
	"github.com/arloliu/sitab/sitime"
	"github.com/beevik/etree"
)

const (
	// RegionSize is the wire size of one region entry.
	RegionSize = 13
	// MaxRegions is the number of region entries one local_time_offset
	// descriptor can carry: 19*13 = 247 payload bytes.
	MaxRegions = 19
	// MaxOffsetMinutes bounds region offsets accepted from XML.
	MaxOffsetMinutes = 780
	// MaxRegionID is the largest 6-bit country_region_id.
	MaxRegionID = 0x3F

	// LocalTimeOffsetXMLName is the element name of the descriptor.
	LocalTimeOffsetXMLName = "local_time_offset_descriptor"
	regionXMLName          = "region"
	countryCodeSize        = 3
)

func init() {
	Register(format.DIDLocalTimeOffset, LocalTimeOffsetXMLName, 0, func() Typed { return &LocalTimeOffset{} })
}

// Region is one local time offset entry.
//
// Offsets are signed minutes. TimeOffset applies now, NextTimeOffset applies
// from TimeOfChange on. Both share a single polarity bit on the wire, so their
// signs may not disagree.
type Region struct {
	CountryCode    string
	RegionID       uint8
	TimeOffset     int
	TimeOfChange   time.Time
	NextTimeOffset int
}

// Negative reports the value of the wire polarity bit.
func (r Region) Negative() bool {
	return r.TimeOffset < 0 || (r.TimeOffset == 0 && r.NextTimeOffset < 0)
}

// Validate checks that the region can be encoded.
func (r Region) Validate() error {
	switch {
	case len(r.CountryCode) != countryCodeSize:
		return fmt.Errorf("%w: country code %q is not %d bytes", errs.ErrInvalidRegion, r.CountryCode, countryCodeSize)
	case r.RegionID > MaxRegionID:
		return fmt.Errorf("%w: region id %d exceeds %d", errs.ErrInvalidRegion, r.RegionID, MaxRegionID)
	case (r.TimeOffset < 0 && r.NextTimeOffset > 0) || (r.TimeOffset > 0 && r.NextTimeOffset < 0):
		return fmt.Errorf("%w: offsets %d and %d have opposite signs", errs.ErrInvalidRegion, r.TimeOffset, r.NextTimeOffset)
	}

	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func putOffset(buf *psibuf.Buffer, minutes int) {
	v, err := sitime.EncodeOffsetBCD(abs(minutes))
	if err != nil {
		buf.SetUserError(err)
		return
	}
	buf.PutUInt16(v)
}

func getOffset(buf *psibuf.Buffer, negative bool) int {
	raw := buf.GetUInt16()
	if buf.HasError() {
		return 0
	}
	v, err := sitime.DecodeOffsetBCD(raw)
	if err != nil {
		buf.SetUserError(err)
		return 0
	}
	if negative {
		return -v
	}

	return v
}

// LocalTimeOffset is the local_time_offset_descriptor.
type LocalTimeOffset struct {
	Regions []Region
}

var _ Typed = (*LocalTimeOffset)(nil)

// Tag returns the local_time_offset descriptor tag.
func (*LocalTimeOffset) Tag() uint8 {
	return format.DIDLocalTimeOffset
}

// XMLName returns the element name of the descriptor.
func (*LocalTimeOffset) XMLName() string {
	return LocalTimeOffsetXMLName
}

// Serialize encodes the regions. More than MaxRegions entries, or an entry
// failing Region.Validate, is an error.
func (l *LocalTimeOffset) Serialize(_ *profile.Context) (Descriptor, error) {
	if len(l.Regions) > MaxRegions {
		return Descriptor{}, fmt.Errorf("%w: %d regions, at most %d per descriptor", errs.ErrDescriptorTooLarge, len(l.Regions), MaxRegions)
	}

	buf := psibuf.NewWriter(make([]byte, len(l.Regions)*RegionSize))
	for _, r := range l.Regions {
		if err := r.Validate(); err != nil {
			return Descriptor{}, err
		}
		buf.PutBytes([]byte(r.CountryCode))
		buf.PutBits(uint32(r.RegionID), 6)
		buf.PutReserved(1)
		buf.PutBool(r.Negative())
		putOffset(buf, r.TimeOffset)
		buf.PutFullMJD(r.TimeOfChange, false)
		putOffset(buf, r.NextTimeOffset)
	}
	if err := buf.Err(); err != nil {
		return Descriptor{}, err
	}

	return New(format.DIDLocalTimeOffset, buf.Bytes())
}

// Deserialize decodes the regions of d. The payload must be a whole number
// of entries.
func (l *LocalTimeOffset) Deserialize(_ *profile.Context, d Descriptor) error {
	l.Regions = nil
	if d.Tag != format.DIDLocalTimeOffset {
		return fmt.Errorf("%w: tag 0x%02X is not a local_time_offset_descriptor", errs.ErrInvalidDescriptor, d.Tag)
	}
	if len(d.Payload)%RegionSize != 0 {
		return fmt.Errorf("%w: local_time_offset payload of %d bytes", errs.ErrInvalidDescriptor, len(d.Payload))
	}

	buf := psibuf.NewReader(d.Payload)
	var regions []Region
	for buf.RemainingBytes() >= RegionSize && !buf.HasError() {
		var r Region
		r.CountryCode = string(buf.GetBytes(countryCodeSize))
		r.RegionID = uint8(buf.GetBits(6)) //nolint:gosec // G115: 6 bits
		buf.SkipBits(1)
		negative := buf.GetBool()
		r.TimeOffset = getOffset(buf, negative)
		r.TimeOfChange = buf.GetFullMJD(false)
		r.NextTimeOffset = getOffset(buf, negative)
		regions = append(regions, r)
	}
	if err := buf.Validate(); err != nil {
		return err
	}
	l.Regions = regions

	return nil
}

// BuildXML adds one region element per entry.
func (l *LocalTimeOffset) BuildXML(_ *profile.Context, el *etree.Element) {
	for _, r := range l.Regions {
		e := el.CreateElement(regionXMLName)
		xmlattr.SetString(e, "country_code", r.CountryCode)
		xmlattr.SetInt(e, "country_region_id", r.RegionID)
		xmlattr.SetInt(e, "local_time_offset", r.TimeOffset)
		xmlattr.SetDateTime(e, "time_of_change", r.TimeOfChange)
		xmlattr.SetInt(e, "next_time_offset", r.NextTimeOffset)
	}
}

// AnalyzeXML loads up to MaxRegions region elements.
func (l *LocalTimeOffset) AnalyzeXML(_ *profile.Context, el *etree.Element) error {
	l.Regions = nil
	children := el.ChildElements()
	if len(children) > MaxRegions {
		return fmt.Errorf("%w: <%s> has %d regions, at most %d", errs.ErrInvalidDocument, el.Tag, len(children), MaxRegions)
	}

	regions := make([]Region, 0, len(children))
	for _, e := range children {
		if e.Tag != regionXMLName {
			return fmt.Errorf("%w: <%s> in <%s>", errs.ErrUnexpectedElement, e.Tag, el.Tag)
		}
		r, err := analyzeRegion(e)
		if err != nil {
			return err
		}
		regions = append(regions, r)
	}
	if len(regions) > 0 {
		l.Regions = regions
	}

	return nil
}

func analyzeRegion(e *etree.Element) (Region, error) {
	var (
		r   Region
		err error
	)
	if r.CountryCode, err = xmlattr.GetString(e, "country_code", true, "", countryCodeSize, countryCodeSize); err != nil {
		return r, err
	}
	if r.RegionID, err = xmlattr.GetInt[uint8](e, "country_region_id", true, 0, 0, MaxRegionID); err != nil {
		return r, err
	}
	if r.TimeOffset, err = xmlattr.GetInt(e, "local_time_offset", true, 0, -MaxOffsetMinutes, MaxOffsetMinutes); err != nil {
		return r, err
	}
	if r.TimeOfChange, err = xmlattr.GetDateTime(e, "time_of_change", true); err != nil {
		return r, err
	}
	if r.NextTimeOffset, err = xmlattr.GetInt(e, "next_time_offset", true, 0, -MaxOffsetMinutes, MaxOffsetMinutes); err != nil {
		return r, err
	}

	return r, r.Validate()
}
