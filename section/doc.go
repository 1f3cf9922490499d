// Package section implements MPEG-2 PSI/SI section framing.
//
// A section is the unit in which broadcast tables are carried and stored.
// Every section starts with a 3-byte short header:
//
//	Bits | Field
//	-----|----------------------------------
//	8    | table_id
//	1    | section_syntax_indicator
//	1    | private_indicator
//	2    | reserved (11)
//	12   | section_length (bytes after this field)
//
// When section_syntax_indicator is set the section is long and the header
// continues with:
//
//	Bits | Field
//	-----|----------------------------------
//	16   | table_id_extension
//	2    | reserved (11)
//	5    | version_number
//	1    | current_next_indicator
//	8    | section_number
//	8    | last_section_number
//
// Long sections always end with a CRC32. Short sections end with a CRC32 only
// when the table type says so; the caller supplies that knowledge to Parse
// through a ShortCRCFunc.
//
// The CRC32 is the MPEG-2 variant: polynomial 0x04C11DB7, processed MSB
// first, initial value 0xFFFFFFFF, no final xor. Running it over a whole
// section, CRC included, yields zero.
package section
