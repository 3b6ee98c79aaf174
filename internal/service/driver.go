package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
	"github.com/Andrna09/B2B-CHECK-IN/internal/repo"
)

// DriverService implements the registration ingress and plain reads.
// The external booking process creates records through Register; the gate
// workflow itself only ever reads and transitions them.
type DriverService struct {
	drivers repo.DriverRepo
}

// NewDriverService constructs a DriverService backed by the provided repo.
func NewDriverService(r repo.DriverRepo) *DriverService {
	return &DriverService{drivers: r}
}

// Register validates and persists a new driver record.
// Returns domain.ErrValidation if required fields are missing or the status
// or entry type is not a known value.
func (s *DriverService) Register(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error) {
	if err := validateRecord(rec); err != nil {
		return domain.DriverRecord{}, err
	}
	rec.LicensePlate = domain.NormalizePlate(rec.LicensePlate)

	result, err := s.drivers.Create(ctx, rec)
	if err != nil {
		return domain.DriverRecord{}, fmt.Errorf("service.DriverService.Register: %w", err)
	}
	return result, nil
}

// GetByID returns a single record by ID, any status.
func (s *DriverService) GetByID(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error) {
	result, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.DriverRecord{}, fmt.Errorf("service.DriverService.GetByID: %w", err)
	}
	return result, nil
}

// validateRecord enforces the registration rules.
//   - License plate, name, and booking code must be non-empty.
//   - Status, when set, must be a known lifecycle state.
//   - Entry type, when set, must be BOOKING or DIRECT.
func validateRecord(rec domain.DriverRecord) error {
	if domain.NormalizePlate(rec.LicensePlate) == "" {
		return fmt.Errorf("%w: license plate is required", domain.ErrValidation)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(rec.BookingCode) == "" {
		return fmt.Errorf("%w: booking code is required", domain.ErrValidation)
	}
	if rec.Status != "" && !rec.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, rec.Status)
	}
	if rec.EntryType != "" && rec.EntryType != domain.EntryBooking && rec.EntryType != domain.EntryDirect {
		return fmt.Errorf("%w: unknown entry type %q", domain.ErrValidation, rec.EntryType)
	}
	return nil
}
