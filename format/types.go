package format

import (
	"fmt"
	"strings"
)

type (
	Standards       uint8
	CompressionType uint8
	FileType        uint8
)

// Signalization standards. A context may enable several at once.
const (
	StandardMPEG Standards = 0x01
	StandardDVB  Standards = 0x02
	StandardATSC Standards = 0x04
	StandardISDB Standards = 0x08
	// StandardJapan marks the Japanese profile of ISDB, where broadcast
	// times are JST instead of UTC.
	StandardJapan Standards = 0x10
)

// Table ids and descriptor tags handled by sitab.
const (
	TIDTOT uint8 = 0x73 // TIDTOT is the DVB Time Offset Table id.
	TIDSTT uint8 = 0xCD // TIDSTT is the ATSC System Time Table id.

	DIDLocalTimeOffset uint8 = 0x58 // DIDLocalTimeOffset is the DVB local_time_offset_descriptor tag.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	FileUnknown FileType = iota
	FileBinary
	FileXML
)

var standardNames = []struct {
	std  Standards
	name string
}{
	{StandardMPEG, "MPEG"},
	{StandardDVB, "DVB"},
	{StandardATSC, "ATSC"},
	{StandardISDB, "ISDB"},
	{StandardJapan, "JAPAN"},
}

// Has reports whether all standards in other are set in s.
func (s Standards) Has(other Standards) bool {
	return s&other == other
}

func (s Standards) String() string {
	if s == 0 {
		return "none"
	}

	var names []string
	for _, sn := range standardNames {
		if s.Has(sn.std) {
			names = append(names, sn.name)
		}
	}

	return strings.Join(names, ", ")
}

// ParseStandards combines standard names, case-insensitive, into a bitmask.
func ParseStandards(names ...string) (Standards, error) {
	var s Standards
	for _, name := range names {
		found := false
		for _, sn := range standardNames {
			if strings.EqualFold(strings.TrimSpace(name), sn.name) {
				s |= sn.std
				found = true

				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown standard: %q", name)
		}
	}

	return s, nil
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression converts a compression name ("none", "zstd", "s2", "lz4")
// into a CompressionType. The empty string maps to CompressionNone.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

func (f FileType) String() string {
	switch f {
	case FileBinary:
		return "binary"
	case FileXML:
		return "XML"
	default:
		return "unknown"
	}
}
