package sectionfile

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/sitab/compress"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/pool"
	"github.com/arloliu/sitab/section"
	"github.com/arloliu/sitab/tables"
)

// LoadBinary reads concatenated sections from r, decompressed with the
// configured compression. Sections are appended to the file.
func (f *File) LoadBinary(r io.Reader) error {
	return f.loadBinary(r, f.compression)
}

// LoadBinaryFile reads a binary section file. Without WithCompression the
// compression is taken from the file suffix.
func (f *File) LoadBinaryFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := f.loadBinary(file, f.compressionFor(path)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

func (f *File) loadBinary(r io.Reader, ct format.CompressionType) error {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return err
	}

	bb := pool.GetFileBuffer()
	defer pool.PutFileBuffer(bb)

	if _, err := bb.ReadFrom(r); err != nil {
		return fmt.Errorf("read sections: %w", err)
	}

	data, err := codec.Decompress(bb.Bytes())
	if err != nil {
		return fmt.Errorf("decompress %s: %w", ct, err)
	}

	secs, err := section.ParseAll(data, tables.ShortCRC, f.crcMode)
	for _, s := range secs {
		f.AddSection(s)
	}

	return err
}

// SaveBinary writes all sections to w, compressed with the configured
// compression.
func (f *File) SaveBinary(w io.Writer) error {
	return f.saveBinary(w, f.compression)
}

// SaveBinaryFile writes a binary section file. Without WithCompression the
// compression is taken from the file suffix.
func (f *File) SaveBinaryFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := f.saveBinary(file, f.compressionFor(path)); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return file.Close()
}

func (f *File) saveBinary(w io.Writer, ct format.CompressionType) error {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return err
	}

	bb := pool.GetFileBuffer()
	defer pool.PutFileBuffer(bb)

	for _, s := range f.sections {
		bb.B = s.AppendTo(bb.B)
	}

	data, err := codec.Compress(bb.Bytes())
	if err != nil {
		return fmt.Errorf("compress %s: %w", ct, err)
	}

	_, err = w.Write(data)

	return err
}

func (f *File) compressionFor(path string) format.CompressionType {
	if f.compressionSet {
		return f.compression
	}
	ct, _ := compress.CompressionFromName(path)

	return ct
}
