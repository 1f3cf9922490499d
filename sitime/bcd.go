package sitime

import (
	"fmt"

	"github.com/arloliu/sitab/errs"
)

// DecodeBCD decodes a two-digit binary-coded decimal byte.
func DecodeBCD(b byte) (int, error) {
	hi, lo := int(b>>4), int(b&0x0F)
	if hi > 9 || lo > 9 {
		return 0, fmt.Errorf("%w: 0x%02X", errs.ErrInvalidBCD, b)
	}

	return hi*10 + lo, nil
}

// EncodeBCD encodes v, in [0, 99], as a two-digit binary-coded decimal byte.
func EncodeBCD(v int) (byte, error) {
	if v < 0 || v > 99 {
		return 0, fmt.Errorf("%w: %d does not fit two BCD digits", errs.ErrInvalidBCD, v)
	}

	return mustBCD(v), nil
}

func mustBCD(v int) byte {
	return byte(v/10)<<4 | byte(v%10) //nolint:gosec // G115: callers guarantee 0..99
}

// DecodeOffsetBCD decodes a 4-digit hhmm BCD time offset into minutes.
func DecodeOffsetBCD(v uint16) (int, error) {
	hours, err := DecodeBCD(byte(v >> 8))
	if err != nil {
		return 0, err
	}
	minutes, err := DecodeBCD(byte(v))
	if err != nil {
		return 0, err
	}
	if minutes > 59 {
		return 0, fmt.Errorf("%w: %02d minutes", errs.ErrInvalidDuration, minutes)
	}

	return hours*60 + minutes, nil
}

// EncodeOffsetBCD encodes a non-negative offset in minutes as 4-digit hhmm BCD.
func EncodeOffsetBCD(minutes int) (uint16, error) {
	if minutes < 0 || minutes/60 > 99 {
		return 0, fmt.Errorf("%w: %d minutes", errs.ErrInvalidDuration, minutes)
	}

	return uint16(mustBCD(minutes/60))<<8 | uint16(mustBCD(minutes%60)), nil
}
