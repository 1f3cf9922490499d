// Package sectionfile loads and saves collections of PSI/SI sections.
//
// A File holds sections in their binary form. Binary files are the plain
// concatenation of sections, optionally wrapped in a compression frame
// selected by option or by file suffix (.zst, .sz, .lz4). XML files have a
// <tsduck> root with one element per table; converting between the two goes
// through the tables registry.
//
// Basic usage:
//
//	f, err := sectionfile.New(ctx, sectionfile.WithDeduplication(true))
//	if err != nil {
//		return err
//	}
//	if err := f.LoadXMLFile("time.xml"); err != nil {
//		return err
//	}
//	err = f.SaveBinaryFile("time.bin.zst")
package sectionfile
