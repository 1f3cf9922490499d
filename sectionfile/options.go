package sectionfile

import (
	"fmt"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/options"
	"github.com/arloliu/sitab/section"
)

// Option configures a File.
type Option = options.Option[*File]

// WithCRCMode sets how stored CRC32 values of loaded binary sections are
// handled. The default is section.CRCCheck.
func WithCRCMode(mode section.CRCMode) Option {
	return options.NoError(func(f *File) {
		f.crcMode = mode
	})
}

// WithCompression forces the compression of binary files, regardless of
// their suffix.
func WithCompression(t format.CompressionType) Option {
	return options.New(func(f *File) error {
		switch t {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			f.compression = t
			f.compressionSet = true

			return nil
		default:
			return fmt.Errorf("%w: compression type %d", errs.ErrInvalidConfig, t)
		}
	})
}

// WithDeduplication drops sections identical to one already in the file.
func WithDeduplication(enabled bool) Option {
	return options.NoError(func(f *File) {
		f.dedup = enabled
	})
}

// WithIndent sets the XML indentation width.
func WithIndent(spaces int) Option {
	return options.New(func(f *File) error {
		if spaces < 0 {
			return fmt.Errorf("%w: negative indent %d", errs.ErrInvalidConfig, spaces)
		}
		f.indent = spaces

		return nil
	})
}
