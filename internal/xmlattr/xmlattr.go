// Package xmlattr provides typed, range-checked access to XML attributes of
// an etree element.
//
// Getters follow one convention: a missing attribute is an error when
// required, otherwise the default is returned; a present attribute must parse
// and fall in range, a bad value is never clamped.
package xmlattr

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/sitab/errs"
	"github.com/beevik/etree"
)

// DateTimeLayout is the date-time format used in attributes.
const DateTimeLayout = "2006-01-02 15:04:05"

// Integer is the set of integer types accepted by GetInt and SetInt.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// SetInt sets a decimal integer attribute.
func SetInt[T Integer](el *etree.Element, name string, v T) {
	var zero T
	if zero-1 < zero {
		el.CreateAttr(name, strconv.FormatInt(int64(v), 10))
	} else {
		el.CreateAttr(name, strconv.FormatUint(uint64(v), 10))
	}
}

// SetHex sets a hexadecimal attribute such as "0x5F" padded to digits.
func SetHex[T Integer](el *etree.Element, name string, v T, digits int) {
	el.CreateAttr(name, fmt.Sprintf("0x%0*X", digits, uint64(v)))
}

// SetBool sets a boolean attribute to "true" or "false".
func SetBool(el *etree.Element, name string, v bool) {
	el.CreateAttr(name, strconv.FormatBool(v))
}

// SetDateTime sets a UTC date-time attribute.
func SetDateTime(el *etree.Element, name string, t time.Time) {
	el.CreateAttr(name, t.UTC().Format(DateTimeLayout))
}

// SetString sets a string attribute.
func SetString(el *etree.Element, name, v string) {
	el.CreateAttr(name, v)
}

func lookup(el *etree.Element, name string, required bool) (string, bool, error) {
	attr := el.SelectAttr(name)
	if attr == nil {
		if required {
			return "", false, fmt.Errorf("%w: <%s> %s", errs.ErrMissingAttribute, el.Tag, name)
		}

		return "", false, nil
	}

	return strings.TrimSpace(attr.Value), true, nil
}

// GetInt reads an integer attribute in [minVal, maxVal].
//
// Decimal and 0x-prefixed hexadecimal values are accepted; "," separators are
// ignored.
func GetInt[T Integer](el *etree.Element, name string, required bool, def, minVal, maxVal T) (T, error) {
	s, ok, err := lookup(el, name, required)
	if err != nil || !ok {
		return def, err
	}
	s = strings.ReplaceAll(s, ",", "")

	var (
		v    T
		zero T
	)
	rangeErr := fmt.Errorf("%w: <%s> %s=%q, allowed %d..%d", errs.ErrAttributeRange, el.Tag, name, s, minVal, maxVal)
	formatErr := fmt.Errorf("%w: <%s> %s=%q is not an integer", errs.ErrAttributeFormat, el.Tag, name, s)

	if zero-1 < zero {
		x, perr := strconv.ParseInt(s, 0, 64)
		if perr != nil {
			if isRange(perr) {
				return def, rangeErr
			}

			return def, formatErr
		}
		v = T(x)
		if int64(v) != x {
			return def, rangeErr
		}
	} else {
		if strings.HasPrefix(s, "-") {
			if _, perr := strconv.ParseInt(s, 0, 64); perr == nil {
				return def, rangeErr
			}

			return def, formatErr
		}
		x, perr := strconv.ParseUint(s, 0, 64)
		if perr != nil {
			if isRange(perr) {
				return def, rangeErr
			}

			return def, formatErr
		}
		v = T(x)
		if uint64(v) != x {
			return def, rangeErr
		}
	}

	if v < minVal || v > maxVal {
		return def, rangeErr
	}

	return v, nil
}

func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError) //nolint:errorlint // strconv returns *NumError directly
	return ok && ne.Err == strconv.ErrRange
}

// GetBool reads a boolean attribute. Accepted values are true/false, yes/no,
// on/off and 1/0, case-insensitive.
func GetBool(el *etree.Element, name string, required, def bool) (bool, error) {
	s, ok, err := lookup(el, name, required)
	if err != nil || !ok {
		return def, err
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return def, fmt.Errorf("%w: <%s> %s=%q is not a boolean", errs.ErrAttributeFormat, el.Tag, name, s)
	}
}

// GetDateTime reads a UTC date-time attribute ("YYYY-MM-DD hh:mm:ss", or
// RFC 3339).
func GetDateTime(el *etree.Element, name string, required bool) (time.Time, error) {
	s, ok, err := lookup(el, name, required)
	if err != nil || !ok {
		return time.Time{}, err
	}

	t, perr := time.ParseInLocation(DateTimeLayout, s, time.UTC)
	if perr != nil {
		t, perr = time.Parse(time.RFC3339, s)
	}
	if perr != nil {
		return time.Time{}, fmt.Errorf("%w: <%s> %s=%q is not a date-time", errs.ErrAttributeFormat, el.Tag, name, s)
	}

	return t.UTC(), nil
}

// GetString reads a string attribute whose length is in [minLen, maxLen].
func GetString(el *etree.Element, name string, required bool, def string, minLen, maxLen int) (string, error) {
	s, ok, err := lookup(el, name, required)
	if err != nil || !ok {
		return def, err
	}
	if len(s) < minLen || len(s) > maxLen {
		return def, fmt.Errorf("%w: <%s> %s=%q, length allowed %d..%d", errs.ErrAttributeRange, el.Tag, name, s, minLen, maxLen)
	}

	return s, nil
}

// SetHexText sets the text content of el to the hexadecimal dump of data.
func SetHexText(el *etree.Element, data []byte) {
	if len(data) == 0 {
		return
	}

	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%02X", b))
	}
	el.SetText(sb.String())
}

// HexText decodes the hexadecimal text content of el, ignoring white space.
func HexText(el *etree.Element) ([]byte, error) {
	compact := strings.Join(strings.Fields(el.Text()), "")
	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: <%s> content is not hexadecimal", errs.ErrAttributeFormat, el.Tag)
	}

	return data, nil
}
