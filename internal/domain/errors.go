package domain

import "errors"

// ErrNotFound is returned when a credential or id resolves to no eligible
// record. "Does not exist" and "exists but in an ineligible status" are
// deliberately conflated — the officer-facing message does not distinguish
// them either. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing officer name, malformed record on registration).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPlateMismatch is returned by Approve when the officer-entered plate does
// not match the registered plate after normalization. The call is rejected
// before any commit attempt, with zero partial mutation. Maps to HTTP 422.
var ErrPlateMismatch = errors.New("plate mismatch")

// ErrMissingReason is returned by Reject when the reason is empty or
// whitespace-only. Rejected locally before any commit attempt. Maps to 422.
var ErrMissingReason = errors.New("rejection reason required")

// ErrStaleState is returned when a transition's status precondition no longer
// holds because another officer changed the record first. The caller must
// discard local session state and re-resolve; there is no automatic retry or
// merge. Handlers should map this to HTTP 409 Conflict.
var ErrStaleState = errors.New("stale state")
