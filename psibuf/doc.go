// Package psibuf provides a bit-level cursor over the payload of an SI section.
//
// A Buffer is either a reader or a writer. It tracks the current position in
// bits, reads and writes fields most-significant-bit first, and keeps a sticky
// error: the first out-of-bounds access latches an error, after which every
// read returns zero and every write is a no-op. A decoder therefore reads all
// of its fields unconditionally and checks the outcome once at the end:
//
//	buf := psibuf.NewReader(payload)
//	version := buf.GetUInt8()
//	buf.SkipBits(3)
//	day := buf.GetBits(5)
//	if err := buf.Validate(); err != nil {
//	    // error latched or trailing bytes left unread
//	}
//
// Byte-sized accessors (GetUInt8..GetUInt32 and their Put counterparts) take a
// fast path on byte boundaries and fall back to bit extraction otherwise.
//
// A Buffer is a short-lived view owned by a single serialize or deserialize
// call; it is not safe for concurrent use.
package psibuf
