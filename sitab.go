// Package sitab converts broadcast service information tables between their
// binary section form and XML.
//
// The codecs follow MPEG-2 PSI, DVB SI and ATSC PSIP bit layouts. Two time
// tables are supported: the ATSC System Time Table (STT) and the DVB Time
// Offset Table (TOT), whose local time offset descriptors are packed and
// unpacked transparently.
//
// # Basic Usage
//
// Compiling an XML document:
//
//	bin, err := sitab.Compile(nil, []byte(`<tsduck><TOT UTC_time="2024-01-02 03:04:05"/></tsduck>`))
//
// Decompiling binary sections:
//
//	doc, err := sitab.Decompile(nil, bin)
//
// # Package Structure
//
// This package wraps the sectionfile package for the common in-memory cases.
// For files, compression or deduplication use sectionfile directly; for single
// tables use the tables package; the low level codecs live in psibuf, sitime,
// descriptor and section.
package sitab

import (
	"bytes"

	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/sectionfile"
	"github.com/arloliu/sitab/tables"
)

// Compile converts an XML table document into concatenated binary sections.
// A nil ctx uses profile.Default().
func Compile(ctx *profile.Context, xml []byte, opts ...sectionfile.Option) ([]byte, error) {
	f, err := sectionfile.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.LoadXML(bytes.NewReader(xml)); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := f.SaveBinary(&out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Decompile converts concatenated binary sections into an XML table
// document. Sections of unsupported tables are skipped.
func Decompile(ctx *profile.Context, bin []byte, opts ...sectionfile.Option) ([]byte, error) {
	f, err := sectionfile.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.LoadBinary(bytes.NewReader(bin)); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := f.SaveXML(&out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// DecodeTables parses concatenated binary sections and decodes the tables
// they carry.
func DecodeTables(ctx *profile.Context, bin []byte, opts ...sectionfile.Option) ([]tables.Table, error) {
	f, err := sectionfile.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.LoadBinary(bytes.NewReader(bin)); err != nil {
		return nil, err
	}

	return f.Tables()
}

// EncodeTables serializes tables into concatenated binary sections.
func EncodeTables(ctx *profile.Context, tbls ...tables.Table) ([]byte, error) {
	f, err := sectionfile.New(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tbls {
		if err := f.AddTable(t); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := f.SaveBinary(&out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
