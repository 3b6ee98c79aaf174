package domain

// EvidenceList is the ordered sequence of photographic proofs attached to an
// open verification or checkout session. Items are opaque references (encoded
// images or storage keys); capture and encoding happen elsewhere.
//
// Both operations return a fresh slice and never modify the receiver's
// backing array, so a committed list can be kept as immutable history while
// the session continues editing its own copy.
type EvidenceList []string

// Add appends an item and returns the resulting list.
func (l EvidenceList) Add(item string) EvidenceList {
	out := make(EvidenceList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, item)
}

// RemoveAt deletes the item at index i and returns the resulting list.
// Positions of subsequent items shift down — there are no stable handles, so
// callers must re-derive indexes from the current list rather than cache
// them. An out-of-range index returns the list unchanged.
func (l EvidenceList) RemoveAt(i int) EvidenceList {
	if i < 0 || i >= len(l) {
		return l
	}
	out := make(EvidenceList, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...)
}
