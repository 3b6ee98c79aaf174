// Package domain contains the core data types for the gate check service.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, roster, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryType describes how a driver entered the system. Descriptive only;
// the verification workflow treats both kinds identically.
type EntryType string

const (
	// EntryBooking marks a driver who pre-registered through the booking flow.
	EntryBooking EntryType = "BOOKING"
	// EntryDirect marks a walk-in driver registered at the yard.
	EntryDirect EntryType = "DIRECT"
)

// DriverRecord represents one reservation/visit of a driver at the yard.
// It is the aggregate the gate lifecycle operates on: created by the external
// booking process, mutated only through gate transitions, never deleted
// (COMPLETED records are retained for audit history).
//
// LicensePlate is the authoritative registered plate and serves as the
// verification oracle; the verification flow never writes to it.
type DriverRecord struct {
	ID           uuid.UUID `json:"id"`
	LicensePlate string    `json:"license_plate"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Status       Status    `json:"status"`

	// BookingCode is the identifier encoded as the scannable QR credential
	// and printed on the access pass.
	BookingCode string    `json:"booking_code"`
	EntryType   EntryType `json:"entry_type"`

	// DocumentFile optionally references a supporting document uploaded
	// during booking. Read-only for the gate workflow.
	DocumentFile string `json:"document_file,omitempty"`

	// SlotTime and SlotDate carry the booked check-in slot as displayed on
	// the access pass. Free-form, set by the booking process.
	SlotTime string `json:"slot_time,omitempty"`
	SlotDate string `json:"slot_date,omitempty"`

	// Entry decision audit trail, populated by Approve/Reject.
	VerifiedBy    string     `json:"verified_by,omitempty"`
	VerifyNote    string     `json:"verify_note,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	EntryEvidence []string   `json:"entry_evidence,omitempty"`
	RejectReason  string     `json:"reject_reason,omitempty"`
	RejectedBy    string     `json:"rejected_by,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty"`

	// Checkout audit trail, populated by Checkout.
	CheckoutBy    string     `json:"checkout_by,omitempty"`
	CheckoutNote  string     `json:"checkout_note,omitempty"`
	CheckoutAt    *time.Time `json:"checkout_at,omitempty"`
	ExitEvidence  []string   `json:"exit_evidence,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
