package domain

// Status is the closed set of lifecycle states a DriverRecord moves through.
// Transitions are validated against the transition table below rather than by
// ad-hoc string comparisons, so an illegal transition is always a single
// well-defined failure (ErrStaleState at commit time).
type Status string

const (
	// StatusBooked is the initial state of a pre-registered driver.
	StatusBooked Status = "BOOKED"
	// StatusCheckedIn means the driver announced arrival through the app.
	StatusCheckedIn Status = "CHECKED_IN"
	// StatusAtGate means the driver is physically queued at the checkpoint.
	StatusAtGate Status = "AT_GATE"
	// StatusVerified means entry was approved after a positive plate match.
	StatusVerified Status = "VERIFIED"
	// StatusRejected means entry was refused; RejectReason is always set.
	StatusRejected Status = "REJECTED"
	// StatusCompleted means the driver checked out and left the yard.
	// Terminal, but retained for audit history.
	StatusCompleted Status = "COMPLETED"
)

// transitions is the single source of truth for legal status changes.
// The conditional updates in the repo layer derive their WHERE clauses
// from this table via TransitionSources.
var transitions = map[Status][]Status{
	StatusBooked:    {StatusCheckedIn, StatusAtGate, StatusVerified, StatusRejected},
	StatusCheckedIn: {StatusAtGate, StatusVerified, StatusRejected},
	StatusAtGate:    {StatusVerified, StatusRejected},
	StatusVerified:  {StatusCompleted},
	StatusRejected:  {},
	StatusCompleted: {},
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// TransitionSources returns every status from which target is reachable in
// one step. The repo layer uses this to build the "only if current status in
// (...)" condition on transition updates.
func TransitionSources(target Status) []Status {
	var sources []Status
	for _, from := range []Status{StatusBooked, StatusCheckedIn, StatusAtGate, StatusVerified, StatusRejected, StatusCompleted} {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// GateInResolvable reports whether a record in this status may be offered by
// credential resolution for the gate-in workflow. Deliberately narrower than
// the gate-in worklist: a driver already AT_GATE is visible on the dashboard
// but is not re-resolved from a fresh scan.
func (s Status) GateInResolvable() bool {
	return s == StatusBooked || s == StatusCheckedIn
}

// EntryDecisionPending reports whether a record still awaits an entry
// decision, i.e. appears in the gate-in worklist.
func (s Status) EntryDecisionPending() bool {
	return s == StatusBooked || s == StatusCheckedIn || s == StatusAtGate
}
