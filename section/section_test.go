package section

import (
	"testing"

	"github.com/arloliu/sitab/errs"
	"github.com/stretchr/testify/require"
)

func withCRCFor(tids ...uint8) ShortCRCFunc {
	return func(tid uint8) bool {
		for _, t := range tids {
			if t == tid {
				return true
			}
		}

		return false
	}
}

func TestCRC32(t *testing.T) {
	require.Equal(t, uint32(0x0376E6E7), CRC32([]byte("123456789")))
	require.Equal(t, uint32(0xFFFFFFFF), CRC32(nil))
}

func TestMaxSizes(t *testing.T) {
	require.Equal(t, 1024, MaxSize(0x73))
	require.Equal(t, 4096, MaxSize(0xCD))
	require.Equal(t, 1024-3-4, MaxPayloadSize(0x73, false, true))
	require.Equal(t, 1024-3, MaxPayloadSize(0x70, false, false))
	require.Equal(t, 4096-8-4, MaxPayloadSize(0xCD, true, false))
}

func TestShortSection_Bytes(t *testing.T) {
	payload := []byte{0xC0, 0x79, 0x12, 0x45, 0x00, 0xF0, 0x00}
	s, err := New(ShortHeader(0x73), payload, true)
	require.NoError(t, err)
	require.Equal(t, 3+7+4, s.Size())

	data := s.Bytes()
	require.Len(t, data, 14)
	require.Equal(t, []byte{0x73, 0x70, 0x0B}, data[:3])
	require.Equal(t, payload, data[3:10])
	require.Zero(t, CRC32(data), "CRC over whole section is zero")

	plain, err := New(ShortHeader(0x20), []byte{1}, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x20, 0x30, 0x01, 0x01}, plain.Bytes())
}

func TestLongSection_Bytes(t *testing.T) {
	s, err := New(LongHeader(0xCD, 0, 3, true), []byte{0x00, 0x01, 0x02}, false)
	require.NoError(t, err)
	require.True(t, s.WithCRC, "long sections always carry a CRC32")

	data := s.Bytes()
	require.Equal(t, []byte{0xCD, 0xF0, 0x0C, 0x00, 0x00, 0xC7, 0x00, 0x00}, data[:8])
	require.Zero(t, CRC32(data))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(ShortHeader(0x73), make([]byte, 1018), true)
	require.ErrorIs(t, err, errs.ErrInvalidSection)

	_, err = New(ShortHeader(0x73), make([]byte, 1017), true)
	require.NoError(t, err)

	_, err = New(LongHeader(0xCD, 0, 32, true), nil, true)
	require.ErrorIs(t, err, errs.ErrInvalidSection)

	h := LongHeader(0xCD, 0, 0, true)
	h.SectionNumber = 1
	_, err = New(h, nil, true)
	require.ErrorIs(t, err, errs.ErrInvalidSection)
}

func TestParse_RoundTrip(t *testing.T) {
	h := LongHeader(0xCD, 0x1234, 17, false)
	s, err := New(h, []byte{9, 8, 7, 6}, true)
	require.NoError(t, err)

	data := append(s.Bytes(), 0xFF, 0xFF) // trailing stuffing not consumed
	got, n, err := Parse(data, nil, CRCCheck)
	require.NoError(t, err)
	require.Equal(t, s.Size(), n)
	require.Equal(t, h, got.Header)
	require.Equal(t, []byte{9, 8, 7, 6}, got.Payload)
	require.Equal(t, s.Bytes(), got.Bytes())
	require.Equal(t, s.Fingerprint(), got.Fingerprint())
}

func TestParse_ShortCRC(t *testing.T) {
	s, err := New(ShortHeader(0x73), []byte{1, 2, 3}, true)
	require.NoError(t, err)

	got, _, err := Parse(s.Bytes(), withCRCFor(0x73), CRCCheck)
	require.NoError(t, err)
	require.True(t, got.WithCRC)
	require.Equal(t, []byte{1, 2, 3}, got.Payload)

	// Without CRC knowledge the CRC stays in the payload.
	got, _, err = Parse(s.Bytes(), nil, CRCCheck)
	require.NoError(t, err)
	require.False(t, got.WithCRC)
	require.Len(t, got.Payload, 7)
}

func TestParse_CRCModes(t *testing.T) {
	s, err := New(LongHeader(0xCD, 0, 0, true), []byte{0x00, 0x3B}, true)
	require.NoError(t, err)
	bad := s.Bytes()
	bad[len(bad)-1] ^= 0xFF

	_, _, err = Parse(bad, nil, CRCCheck)
	require.ErrorIs(t, err, errs.ErrCRCMismatch)

	kept, _, err := Parse(bad, nil, CRCIgnore)
	require.NoError(t, err)
	require.Equal(t, bad, kept.Bytes(), "ignored CRC is written back unchanged")

	fixed, _, err := Parse(bad, nil, CRCCompute)
	require.NoError(t, err)
	require.Equal(t, s.Bytes(), fixed.Bytes())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "truncated header", data: []byte{0x73, 0x70}},
		{name: "truncated payload", data: []byte{0x73, 0x70, 0x0B, 0x00}},
		{name: "long section too short", data: []byte{0xCD, 0xF0, 0x03, 0x00, 0x00, 0xC1}},
		{name: "exceeds max size", data: append([]byte{0x73, 0x74, 0x00}, make([]byte, 1024)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.data, nil, CRCCheck)
			require.ErrorIs(t, err, errs.ErrInvalidSection)
		})
	}
}

func TestParseAll(t *testing.T) {
	a, err := New(ShortHeader(0x73), []byte{1}, true)
	require.NoError(t, err)
	b, err := New(LongHeader(0xCD, 0, 1, true), []byte{2, 3}, true)
	require.NoError(t, err)

	data := b.AppendTo(a.Bytes())
	all, err := ParseAll(data, withCRCFor(0x73), CRCCheck)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, uint8(0x73), all[0].Header.TableID)
	require.Equal(t, uint8(0xCD), all[1].Header.TableID)

	_, err = ParseAll(data[:len(data)-1], withCRCFor(0x73), CRCCheck)
	require.ErrorIs(t, err, errs.ErrInvalidSection)
}

func TestParseCRCMode(t *testing.T) {
	for _, m := range []CRCMode{CRCCheck, CRCIgnore, CRCCompute} {
		got, err := ParseCRCMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	_, err := ParseCRCMode("maybe")
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}
