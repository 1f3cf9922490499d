package sitime

import (
	"fmt"
	"time"

	"github.com/arloliu/sitab/endian"
	"github.com/arloliu/sitab/errs"
)

const (
	// MJDSize is the size in bytes of a full MJD+BCD timestamp.
	MJDSize = 5
	// MaxMJD is the largest encodable day count (2038-04-22).
	MaxMJD = 0xFFFF
	// JSTOffset is the offset of Japan Standard Time from UTC.
	JSTOffset = 9 * time.Hour

	day = 24 * time.Hour
)

// MJDEpoch is day zero of the Modified Julian Date.
var MJDEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

// DecodeMJD decodes a 5-byte MJD+BCD timestamp.
//
// When jst is true the encoded value is a JST civil time and the result is
// converted back to UTC.
//
// Returns:
//   - time.Time: the decoded UTC instant
//   - error: ErrBufferUnderflow if b is shorter than MJDSize, ErrInvalidBCD for
//     a non-decimal nibble, ErrTimeOutOfRange for an impossible time of day
func DecodeMJD(b []byte, jst bool) (time.Time, error) {
	if len(b) < MJDSize {
		return time.Time{}, errs.ErrBufferUnderflow
	}

	mjd := endian.Wire().Uint16(b[0:2])

	hour, err := DecodeBCD(b[2])
	if err != nil {
		return time.Time{}, err
	}
	minute, err := DecodeBCD(b[3])
	if err != nil {
		return time.Time{}, err
	}
	second, err := DecodeBCD(b[4])
	if err != nil {
		return time.Time{}, err
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %02d:%02d:%02d", errs.ErrTimeOutOfRange, hour, minute, second)
	}

	t := MJDEpoch.AddDate(0, 0, int(mjd)).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
	if jst {
		t = t.Add(-JSTOffset)
	}

	return t, nil
}

// EncodeMJD encodes t as a 5-byte MJD+BCD timestamp, truncated to the second.
//
// When jst is true the instant is first converted to JST civil time.
func EncodeMJD(t time.Time, jst bool) ([MJDSize]byte, error) {
	var out [MJDSize]byte

	t = t.UTC()
	if jst {
		t = t.Add(JSTOffset)
	}
	if t.Before(MJDEpoch) {
		return out, fmt.Errorf("%w: %s before MJD epoch", errs.ErrTimeOutOfRange, t.Format(time.DateTime))
	}

	elapsed := t.Sub(MJDEpoch)
	days := int64(elapsed / day)
	if days > MaxMJD {
		return out, fmt.Errorf("%w: %s after last MJD day", errs.ErrTimeOutOfRange, t.Format(time.DateTime))
	}

	secs := int((elapsed % day) / time.Second)
	endian.Wire().PutUint16(out[0:2], uint16(days)) //nolint:gosec // G115: days checked above
	out[2] = mustBCD(secs / 3600)
	out[3] = mustBCD(secs / 60 % 60)
	out[4] = mustBCD(secs % 60)

	return out, nil
}

// UTCToJST converts a UTC instant to the equivalent JST civil time.
func UTCToJST(t time.Time) time.Time {
	return t.Add(JSTOffset)
}

// JSTToUTC converts a JST civil time to the UTC instant.
func JSTToUTC(t time.Time) time.Time {
	return t.Add(-JSTOffset)
}
