package sitime

import (
	"testing"
	"time"

	"github.com/arloliu/sitab/errs"
	"github.com/stretchr/testify/require"
)

func TestDecodeMJD(t *testing.T) {
	// Reference example: 93/10/13 12:45:00 is coded as 0xC079124500.
	raw := []byte{0xC0, 0x79, 0x12, 0x45, 0x00}

	got, err := DecodeMJD(raw, false)
	require.NoError(t, err)
	require.Equal(t, time.Date(1993, time.October, 13, 12, 45, 0, 0, time.UTC), got)

	t.Run("JST profile", func(t *testing.T) {
		got, err := DecodeMJD(raw, true)
		require.NoError(t, err)
		require.Equal(t, time.Date(1993, time.October, 13, 3, 45, 0, 0, time.UTC), got)
	})

	t.Run("Short input", func(t *testing.T) {
		_, err := DecodeMJD(raw[:4], false)
		require.ErrorIs(t, err, errs.ErrBufferUnderflow)
	})

	t.Run("Invalid BCD", func(t *testing.T) {
		_, err := DecodeMJD([]byte{0xC0, 0x79, 0x1A, 0x45, 0x00}, false)
		require.ErrorIs(t, err, errs.ErrInvalidBCD)
	})

	t.Run("Invalid hour", func(t *testing.T) {
		_, err := DecodeMJD([]byte{0xC0, 0x79, 0x25, 0x00, 0x00}, false)
		require.ErrorIs(t, err, errs.ErrTimeOutOfRange)
	})
}

func TestEncodeMJD(t *testing.T) {
	ts := time.Date(1993, time.October, 13, 12, 45, 0, 500, time.UTC)

	raw, err := EncodeMJD(ts, false)
	require.NoError(t, err)
	require.Equal(t, [MJDSize]byte{0xC0, 0x79, 0x12, 0x45, 0x00}, raw)

	jst, err := EncodeMJD(ts, true)
	require.NoError(t, err)
	require.Equal(t, [MJDSize]byte{0xC0, 0x79, 0x21, 0x45, 0x00}, jst)

	t.Run("Round trip across zones", func(t *testing.T) {
		loc := time.FixedZone("CET", 3600)
		in := time.Date(2020, time.March, 29, 3, 0, 59, 0, loc)
		for _, useJST := range []bool{false, true} {
			raw, err := EncodeMJD(in, useJST)
			require.NoError(t, err)
			out, err := DecodeMJD(raw[:], useJST)
			require.NoError(t, err)
			require.True(t, in.Equal(out), "jst=%v: %s != %s", useJST, in, out)
		}
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := EncodeMJD(time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC), false)
		require.ErrorIs(t, err, errs.ErrTimeOutOfRange)

		_, err = EncodeMJD(time.Date(2038, time.April, 23, 0, 0, 0, 0, time.UTC), false)
		require.ErrorIs(t, err, errs.ErrTimeOutOfRange)

		last, err := EncodeMJD(time.Date(2038, time.April, 22, 23, 59, 59, 0, time.UTC), false)
		require.NoError(t, err)
		require.Equal(t, [MJDSize]byte{0xFF, 0xFF, 0x23, 0x59, 0x59}, last)
	})
}

func TestBCD(t *testing.T) {
	for v := 0; v <= 99; v++ {
		b, err := EncodeBCD(v)
		require.NoError(t, err)
		got, err := DecodeBCD(b)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	_, err := EncodeBCD(100)
	require.ErrorIs(t, err, errs.ErrInvalidBCD)
	_, err = DecodeBCD(0xA0)
	require.ErrorIs(t, err, errs.ErrInvalidBCD)
}

func TestOffsetBCD(t *testing.T) {
	v, err := EncodeOffsetBCD(90)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0130), v)

	minutes, err := DecodeOffsetBCD(0x1245)
	require.NoError(t, err)
	require.Equal(t, 12*60+45, minutes)

	_, err = DecodeOffsetBCD(0x0075)
	require.ErrorIs(t, err, errs.ErrInvalidDuration)
	_, err = EncodeOffsetBCD(-1)
	require.ErrorIs(t, err, errs.ErrInvalidDuration)
}

func TestGPSToUTC(t *testing.T) {
	t.Run("Unset time maps to epoch", func(t *testing.T) {
		require.Equal(t, Epoch, GPSToUTC(0, 18))
		require.Equal(t, int64(0), GPSToUTC(0, 0).Unix())
	})

	t.Run("Leap second offset applied", func(t *testing.T) {
		got := GPSToUTC(1000000000, 18)
		require.Equal(t, time.Date(2011, time.September, 14, 1, 46, 22, 0, time.UTC), got)
	})

	t.Run("Inverse", func(t *testing.T) {
		ts := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
		secs, err := UTCToGPS(ts, 18)
		require.NoError(t, err)
		require.Equal(t, ts, GPSToUTC(secs, 18))

		secs, err = UTCToGPS(Epoch, 18)
		require.NoError(t, err)
		require.Zero(t, secs)

		_, err = UTCToGPS(time.Date(1975, 1, 1, 0, 0, 0, 0, time.UTC), 0)
		require.ErrorIs(t, err, errs.ErrTimeOutOfRange)
	})
}
