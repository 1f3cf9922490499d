package descriptor

import (
	"testing"
	"time"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/profile"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

var changeTime = time.Date(1993, time.October, 13, 12, 45, 0, 0, time.UTC)

func TestLocalTimeOffset_Wire(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   []byte
	}{
		{
			name:   "positive",
			region: Region{CountryCode: "FRA", RegionID: 0, TimeOffset: 60, TimeOfChange: changeTime, NextTimeOffset: 120},
			want:   []byte{'F', 'R', 'A', 0x02, 0x01, 0x00, 0xC0, 0x79, 0x12, 0x45, 0x00, 0x02, 0x00},
		},
		{
			name:   "negative",
			region: Region{CountryCode: "USA", RegionID: 5, TimeOffset: -330, TimeOfChange: changeTime, NextTimeOffset: -270},
			want:   []byte{'U', 'S', 'A', 0x17, 0x05, 0x30, 0xC0, 0x79, 0x12, 0x45, 0x00, 0x04, 0x30},
		},
		{
			name:   "zero now, negative next",
			region: Region{CountryCode: "GBR", RegionID: 63, TimeOffset: 0, TimeOfChange: changeTime, NextTimeOffset: -60},
			want:   []byte{'G', 'B', 'R', 0xFF, 0x00, 0x00, 0xC0, 0x79, 0x12, 0x45, 0x00, 0x01, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lto := &LocalTimeOffset{Regions: []Region{tt.region}}
			d, err := lto.Serialize(profile.Default())
			require.NoError(t, err)
			require.Equal(t, format.DIDLocalTimeOffset, d.Tag)
			require.Equal(t, tt.want, d.Payload)

			var got LocalTimeOffset
			require.NoError(t, got.Deserialize(profile.Default(), d))
			require.Equal(t, lto.Regions, got.Regions)
		})
	}
}

func TestLocalTimeOffset_SerializeErrors(t *testing.T) {
	lto := &LocalTimeOffset{Regions: []Region{{CountryCode: "FRA", TimeOffset: 60, TimeOfChange: changeTime, NextTimeOffset: -60}}}
	_, err := lto.Serialize(nil)
	require.ErrorIs(t, err, errs.ErrInvalidRegion)

	lto = &LocalTimeOffset{Regions: []Region{{CountryCode: "FR", TimeOfChange: changeTime}}}
	_, err = lto.Serialize(nil)
	require.ErrorIs(t, err, errs.ErrInvalidRegion)

	lto = &LocalTimeOffset{Regions: makeRegions(MaxRegions + 1)}
	_, err = lto.Serialize(nil)
	require.ErrorIs(t, err, errs.ErrDescriptorTooLarge)

	lto = &LocalTimeOffset{Regions: []Region{{CountryCode: "FRA"}}}
	_, err = lto.Serialize(nil)
	require.ErrorIs(t, err, errs.ErrTimeOutOfRange)
}

func TestLocalTimeOffset_DeserializeErrors(t *testing.T) {
	var lto LocalTimeOffset

	err := lto.Deserialize(nil, Descriptor{Tag: format.DIDLocalTimeOffset, Payload: make([]byte, 14)})
	require.ErrorIs(t, err, errs.ErrInvalidDescriptor)

	err = lto.Deserialize(nil, Descriptor{Tag: 0x40, Payload: make([]byte, 13)})
	require.ErrorIs(t, err, errs.ErrInvalidDescriptor)

	bad := []byte{'F', 'R', 'A', 0x02, 0x01, 0x0A, 0xC0, 0x79, 0x12, 0x45, 0x00, 0x02, 0x00}
	err = lto.Deserialize(nil, Descriptor{Tag: format.DIDLocalTimeOffset, Payload: bad})
	require.ErrorIs(t, err, errs.ErrInvalidBCD)
	require.Nil(t, lto.Regions)

	require.NoError(t, lto.Deserialize(nil, Descriptor{Tag: format.DIDLocalTimeOffset}))
	require.Empty(t, lto.Regions)
}

func TestLocalTimeOffset_XML(t *testing.T) {
	lto := &LocalTimeOffset{Regions: []Region{
		{CountryCode: "FRA", RegionID: 1, TimeOffset: 60, TimeOfChange: changeTime, NextTimeOffset: 120},
		{CountryCode: "USA", RegionID: 2, TimeOffset: -300, TimeOfChange: changeTime, NextTimeOffset: -240},
	}}

	doc := etree.NewDocument()
	el := doc.CreateElement(lto.XMLName())
	lto.BuildXML(nil, el)

	regions := el.SelectElements("region")
	require.Len(t, regions, 2)
	require.Equal(t, "FRA", regions[0].SelectAttrValue("country_code", ""))
	require.Equal(t, "-300", regions[1].SelectAttrValue("local_time_offset", ""))
	require.Equal(t, "1993-10-13 12:45:00", regions[1].SelectAttrValue("time_of_change", ""))

	var got LocalTimeOffset
	require.NoError(t, got.AnalyzeXML(nil, el))
	require.Equal(t, lto.Regions, got.Regions)
}

func TestLocalTimeOffset_AnalyzeXMLErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		err  error
	}{
		{
			name: "offset out of range",
			xml:  `<local_time_offset_descriptor><region country_code="FRA" country_region_id="0" local_time_offset="781" time_of_change="2020-01-01 00:00:00" next_time_offset="0"/></local_time_offset_descriptor>`,
			err:  errs.ErrAttributeRange,
		},
		{
			name: "region id out of range",
			xml:  `<local_time_offset_descriptor><region country_code="FRA" country_region_id="64" local_time_offset="0" time_of_change="2020-01-01 00:00:00" next_time_offset="0"/></local_time_offset_descriptor>`,
			err:  errs.ErrAttributeRange,
		},
		{
			name: "missing time of change",
			xml:  `<local_time_offset_descriptor><region country_code="FRA" country_region_id="0" local_time_offset="0" next_time_offset="0"/></local_time_offset_descriptor>`,
			err:  errs.ErrMissingAttribute,
		},
		{
			name: "opposite signs",
			xml:  `<local_time_offset_descriptor><region country_code="FRA" country_region_id="0" local_time_offset="60" time_of_change="2020-01-01 00:00:00" next_time_offset="-60"/></local_time_offset_descriptor>`,
			err:  errs.ErrInvalidRegion,
		},
		{
			name: "unexpected child",
			xml:  `<local_time_offset_descriptor><zone/></local_time_offset_descriptor>`,
			err:  errs.ErrUnexpectedElement,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString(tt.xml))

			var lto LocalTimeOffset
			require.ErrorIs(t, lto.AnalyzeXML(nil, doc.Root()), tt.err)
		})
	}
}
