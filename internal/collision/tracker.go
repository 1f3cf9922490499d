package collision

// Tracker detects repeated binary sections during deduplication.
//
// Sections are indexed by fingerprint. Two sections with the same
// fingerprint are compared byte for byte, so a hash collision never makes a
// distinct section look like a duplicate.
type Tracker struct {
	seen         map[uint64][][]byte // fingerprint → distinct contents
	count        int
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen: make(map[uint64][][]byte),
	}
}

// Track records data under its fingerprint.
//
// Returns false when identical data was already tracked. data must not be
// modified afterwards.
func (t *Tracker) Track(fingerprint uint64, data []byte) bool {
	bucket := t.seen[fingerprint]
	for _, existing := range bucket {
		if string(existing) == string(data) {
			return false
		}
	}
	if len(bucket) > 0 {
		t.hasCollision = true
	}

	t.seen[fingerprint] = append(bucket, data)
	t.count++

	return true
}

// HasCollision returns true if two distinct contents shared a fingerprint.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of distinct contents tracked.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears all tracked contents and collision state.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.count = 0
	t.hasCollision = false
}
