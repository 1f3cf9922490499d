// Package sitime converts between broadcast timestamp encodings and UTC.
//
// Two wire encodings are supported:
//
//   - MJD+BCD (DVB/ISDB): a 16-bit Modified Julian Date day count followed by
//     hour, minute and second as two-digit binary-coded decimals, 5 bytes in
//     total. Under the Japanese profile the encoded value is JST, so decoding
//     subtracts and encoding adds nine hours.
//   - GPS seconds (ATSC): a 32-bit count of seconds since 1980-01-06T00:00:00Z.
//     The UTC instant is obtained by moving to the Unix epoch and removing the
//     GPS-UTC leap second offset carried next to the value. Zero means "time
//     not set" and always maps to Epoch.
//
// The Japanese profile is an explicit boolean parameter: the caller decides it
// from its context, the codec holds no global state.
package sitime
