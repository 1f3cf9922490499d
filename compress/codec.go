package compress

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
)

// Compressor compresses a whole buffer.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not
	// modified; the result may alias it only for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original data, or an error if data is corrupted
	// or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for a compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type %s", errs.ErrInvalidConfig, compressionType)
}

var suffixes = map[format.CompressionType]string{
	format.CompressionZstd: ".zst",
	format.CompressionS2:   ".sz",
	format.CompressionLZ4:  ".lz4",
}

// Suffix returns the file name suffix of a compression type, empty for none.
func Suffix(compressionType format.CompressionType) string {
	return suffixes[compressionType]
}

// CompressionFromName detects the compression of a file from its suffix.
//
// Returns:
//   - format.CompressionType: the detected type, CompressionNone without a
//     known suffix
//   - string: the name without the compression suffix
func CompressionFromName(name string) (format.CompressionType, string) {
	ext := strings.ToLower(filepath.Ext(name))
	for t, s := range suffixes {
		if ext == s {
			return t, name[:len(name)-len(ext)]
		}
	}

	return format.CompressionNone, name
}
