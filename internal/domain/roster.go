package domain

import "strings"

// Tab selects which gate worklist FilterRoster derives.
type Tab string

const (
	// TabGateIn lists drivers awaiting an entry decision.
	TabGateIn Tab = "GATE_IN"
	// TabGateOut lists admitted drivers awaiting checkout, plus completed
	// visits retained for audit history.
	TabGateOut Tab = "GATE_OUT"
)

// Valid reports whether t is a known worklist tab.
func (t Tab) Valid() bool {
	return t == TabGateIn || t == TabGateOut
}

// FilterRoster derives a gate worklist from the full roster snapshot.
// Pure projection: the input is never mutated and the result is always
// non-nil.
//
// Gate-in includes BOOKED, CHECKED_IN, and AT_GATE records; gate-out includes
// VERIFIED (admitted, awaiting checkout) and COMPLETED (departed) records.
// A non-empty search narrows either list to records whose plate or name
// contains it, case-insensitively.
func FilterRoster(all []DriverRecord, tab Tab, search string) []DriverRecord {
	out := make([]DriverRecord, 0, len(all))
	for _, d := range all {
		if !tabIncludes(tab, d.Status) {
			continue
		}
		if !searchMatches(d, search) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func tabIncludes(tab Tab, s Status) bool {
	switch tab {
	case TabGateIn:
		return s.EntryDecisionPending()
	case TabGateOut:
		return s == StatusVerified || s == StatusCompleted
	default:
		return false
	}
}

func searchMatches(d DriverRecord, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.LicensePlate), q) ||
		strings.Contains(strings.ToLower(d.Name), q)
}
