// Package tables implements the binary and XML codecs of SI tables.
//
// Each table type implements Table: Deserialize and Serialize work on a
// section payload through a psibuf.Buffer, BuildXML and AnalyzeXML on an
// etree element. Table types register themselves by table id and XML name;
// Encode, Decode, ToXML and FromXML dispatch through that registry and take
// care of section framing.
//
// A table starts Empty. A successful Deserialize or AnalyzeXML makes it
// Populated. A failed one clears every field and leaves the table Invalid, so
// a caller never sees a partially decoded table. Clear returns to Empty.
//
// Supported tables:
//
//	Table | Id   | Standard | Framing
//	------|------|----------|-------------------------------------
//	STT   | 0xCD | ATSC     | long section, single section only
//	TOT   | 0x73 | DVB      | short section with CRC32
package tables
