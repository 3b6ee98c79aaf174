package service

import "github.com/Andrna09/B2B-CHECK-IN/internal/domain"

// Session is the working state of one open verification or checkout flow on
// a client: the plate input, the derived match flag, and the evidence buffer.
// It is local, single-actor state — nothing here touches the store, and
// committing goes through GateService, which re-checks every precondition.
type Session struct {
	Record     domain.DriverRecord
	PlateInput string
	PlateMatch bool
	Note       string
	Evidence   domain.EvidenceList
}

// BeginSession opens a fresh session for a resolved record. Any note, plate
// input, or evidence from a previous session is unconditionally discarded.
func BeginSession(rec domain.DriverRecord) *Session {
	return &Session{Record: rec}
}

// SetPlateInput records the officer's current plate input and recomputes the
// match against the registered plate. Called on every input change; the
// match flag is always derived from the latest input, never carried over.
func (s *Session) SetPlateInput(input string) bool {
	s.PlateInput = input
	s.PlateMatch = domain.PlateMatches(input, s.Record.LicensePlate)
	return s.PlateMatch
}

// CanApprove reports whether the approve action should be offered: the
// latest plate input matches. This is a UI hint only — GateService.Approve
// recomputes the match itself and never trusts this flag.
func (s *Session) CanApprove() bool {
	return s.PlateMatch
}

// AddEvidence appends a captured evidence item to the session buffer.
func (s *Session) AddEvidence(item string) {
	s.Evidence = s.Evidence.Add(item)
}

// RemoveEvidence deletes the evidence item at index i; later items shift
// down. Out-of-range indexes are ignored.
func (s *Session) RemoveEvidence(i int) {
	s.Evidence = s.Evidence.RemoveAt(i)
}
