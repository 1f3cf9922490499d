// Package errs defines the sentinel errors shared by all sitab packages.
//
// Errors are compared with errors.Is. Packages wrap them with additional
// context using fmt.Errorf and the %w verb.
package errs

import "errors"

// Bit cursor errors.
var (
	ErrBufferUnderflow = errors.New("sitab: read past end of buffer")
	ErrBufferOverflow  = errors.New("sitab: write past end of buffer")
	ErrReadOnlyBuffer  = errors.New("sitab: write on read-only buffer")
	ErrWriteOnlyBuffer = errors.New("sitab: read on write-only buffer")
	ErrInvalidBitCount = errors.New("sitab: invalid bit count")
	ErrTrailingData    = errors.New("sitab: unexpected trailing data")
)

// Timestamp errors.
var (
	ErrInvalidBCD      = errors.New("sitab: invalid BCD digit")
	ErrTimeOutOfRange  = errors.New("sitab: time out of encodable range")
	ErrInvalidDuration = errors.New("sitab: invalid time offset")
)

// Descriptor errors.
var (
	ErrInvalidDescriptor  = errors.New("sitab: invalid descriptor")
	ErrDescriptorTooLarge = errors.New("sitab: descriptor payload exceeds 255 bytes")
	ErrInvalidRegion      = errors.New("sitab: invalid local time offset region")
)

// XML errors.
var (
	ErrMissingAttribute  = errors.New("sitab: missing required attribute")
	ErrAttributeRange    = errors.New("sitab: attribute value out of range")
	ErrAttributeFormat   = errors.New("sitab: invalid attribute value")
	ErrUnexpectedElement = errors.New("sitab: unexpected XML element")
	ErrInvalidDocument   = errors.New("sitab: invalid XML document")
)

// Table and section errors.
var (
	ErrTooManySections = errors.New("sitab: table does not fit in a single section")
	ErrInvalidTable    = errors.New("sitab: invalid table")
	ErrUnknownTable    = errors.New("sitab: unknown table")
	ErrInvalidSection  = errors.New("sitab: invalid section")
	ErrCRCMismatch     = errors.New("sitab: section CRC32 mismatch")
)

// File and configuration errors.
var (
	ErrUnknownFileType = errors.New("sitab: unknown file type")
	ErrInvalidConfig   = errors.New("sitab: invalid configuration")
)
