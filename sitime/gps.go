package sitime

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/sitab/errs"
)

// UnixEpochToGPS is the number of seconds between 1970-01-01 and 1980-01-06.
const UnixEpochToGPS = 315964800

// Epoch is the instant returned for an unset GPS time.
var Epoch = time.Unix(0, 0).UTC()

// GPSToUTC converts ATSC GPS seconds into a UTC instant.
//
// A zero systemTime is the "not set" sentinel and yields Epoch.
func GPSToUTC(systemTime uint32, gpsUTCOffset uint8) time.Time {
	if systemTime == 0 {
		return Epoch
	}

	return time.Unix(int64(systemTime)+UnixEpochToGPS-int64(gpsUTCOffset), 0).UTC()
}

// UTCToGPS is the inverse of GPSToUTC. Epoch encodes as the zero sentinel.
func UTCToGPS(t time.Time, gpsUTCOffset uint8) (uint32, error) {
	if t.Equal(Epoch) {
		return 0, nil
	}

	secs := t.Unix() - UnixEpochToGPS + int64(gpsUTCOffset)
	if secs <= 0 || secs > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s not representable in GPS seconds", errs.ErrTimeOutOfRange, t.UTC().Format(time.DateTime))
	}

	return uint32(secs), nil
}
