package sectionfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/sitab/compress"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/collision"
	"github.com/arloliu/sitab/internal/hash"
	"github.com/arloliu/sitab/internal/options"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/section"
	"github.com/arloliu/sitab/tables"
)

// DefaultIndent is the XML indentation used without WithIndent.
const DefaultIndent = 2

// File is an ordered collection of sections.
//
// A File is not safe for concurrent use.
type File struct {
	ctx            *profile.Context
	crcMode        section.CRCMode
	compression    format.CompressionType
	compressionSet bool
	dedup          bool
	indent         int

	sections []section.Section
	tracker  *collision.Tracker
}

// New creates an empty File. A nil ctx uses profile.Default().
func New(ctx *profile.Context, opts ...Option) (*File, error) {
	if ctx == nil {
		ctx = profile.Default()
	}

	f := &File{
		ctx:         ctx,
		crcMode:     section.CRCCheck,
		compression: format.CompressionNone,
		indent:      DefaultIndent,
		tracker:     collision.NewTracker(),
	}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// Context returns the context used by table conversions.
func (f *File) Context() *profile.Context {
	return f.ctx
}

// Len returns the number of sections.
func (f *File) Len() int {
	return len(f.sections)
}

// Sections returns the sections in insertion order. The slice must not be
// modified.
func (f *File) Sections() []section.Section {
	return f.sections
}

// Clear removes all sections.
func (f *File) Clear() {
	f.sections = nil
	f.tracker.Reset()
}

// AddSection appends a section.
//
// Returns false when deduplication is enabled and an identical section is
// already present.
func (f *File) AddSection(s section.Section) bool {
	if f.dedup {
		data := s.Bytes()
		fp := hash.Fingerprint(data)
		if !f.tracker.Track(fp, data) {
			f.ctx.Logger().Debug().
				Uint8("table_id", s.Header.TableID).
				Uint64("fingerprint", fp).
				Msg("duplicate section dropped")

			return false
		}
	}
	f.sections = append(f.sections, s)

	return true
}

// AddTable serializes a table and appends its section.
func (f *File) AddTable(t tables.Table) error {
	s, err := tables.Encode(f.ctx, t)
	if err != nil {
		return err
	}
	f.AddSection(s)

	return nil
}

// Tables decodes every section of a registered table type. Sections of
// unknown tables are skipped with a warning.
func (f *File) Tables() ([]tables.Table, error) {
	out := make([]tables.Table, 0, len(f.sections))
	for i, s := range f.sections {
		if _, ok := tables.Lookup(s.Header.TableID); !ok {
			f.ctx.Logger().Warn().
				Int("section", i).
				Uint8("table_id", s.Header.TableID).
				Msg("unsupported table skipped")

			continue
		}

		t, err := tables.Decode(f.ctx, s)
		if err != nil {
			return out, fmt.Errorf("section %d: %w", i, err)
		}
		out = append(out, t)
	}

	return out, nil
}

// FileTypeOf guesses the content of a file from its name. A compression
// suffix is ignored, so "a.bin.zst" is a binary file.
func FileTypeOf(path string) format.FileType {
	_, base := compress.CompressionFromName(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".bin":
		return format.FileBinary
	case ".xml":
		return format.FileXML
	default:
		return format.FileUnknown
	}
}

// IsInlineXML reports whether a command line argument is an XML document
// rather than a file name.
func IsInlineXML(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "<?xml")
}

// BuildFileName replaces the extension of path with the one of t. A
// compression suffix is removed first.
func BuildFileName(path string, t format.FileType) string {
	_, base := compress.CompressionFromName(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	switch t {
	case format.FileBinary:
		return base + ".bin"
	case format.FileXML:
		return base + ".xml"
	default:
		return base
	}
}
