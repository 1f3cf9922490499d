// Package hash computes the 64-bit fingerprints used to identify sections.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of data.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ID computes the xxHash64 of a string, such as a table XML name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Combine computes one fingerprint over several byte-runs taken in order, as
// if they were concatenated.
func Combine(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
