package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
	"github.com/Andrna09/B2B-CHECK-IN/internal/metrics"
	"github.com/Andrna09/B2B-CHECK-IN/internal/repo"
)

// GateService is the gate lifecycle engine: it owns the approve, reject, and
// checkout transitions and the invariants attached to them. All rule checks
// happen here, before any commit; the repo's conditional updates additionally
// protect every transition against concurrent officers.
type GateService struct {
	drivers repo.DriverRepo
	metrics *metrics.Metrics
}

// NewGateService constructs a GateService backed by the provided repo.
// metrics may be nil (unit tests); the counters degrade to no-ops.
func NewGateService(r repo.DriverRepo, m *metrics.Metrics) *GateService {
	return &GateService{drivers: r, metrics: m}
}

// Approve admits a driver: the record transitions to VERIFIED with officer,
// note, evidence, and a server-side timestamp recorded.
//
// plateInput is the officer-entered (or OCR-derived) plate string. The match
// against the registered plate is recomputed here, against the stored record,
// at the moment of the call — the API deliberately has no way to pass a
// precomputed match flag, so an officer confirming a plate, then editing the
// input, then approving can never commit against stale state.
//
// Returns domain.ErrPlateMismatch without any commit attempt when the match
// fails, domain.ErrStaleState when another officer decided first.
func (s *GateService) Approve(ctx context.Context, id uuid.UUID, officer, plateInput, note string, evidence []string) (domain.DriverRecord, error) {
	if strings.TrimSpace(officer) == "" {
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Approve: %w: officer is required", domain.ErrValidation)
	}

	rec, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Approve: %w", err)
	}

	if !domain.PlateMatches(plateInput, rec.LicensePlate) {
		s.metrics.IncPlateMismatch()
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Approve: %w", domain.ErrPlateMismatch)
	}

	result, err := s.drivers.Approve(ctx, id, officer, note, evidence)
	if err != nil {
		if errors.Is(err, domain.ErrStaleState) {
			s.metrics.IncStaleConflicts()
		}
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Approve: %w", err)
	}

	s.metrics.IncApprovals()
	return result, nil
}

// Reject refuses a driver entry. The reason is mandatory for audit
// traceability: an empty or whitespace-only reason fails locally with
// domain.ErrMissingReason before any repo call is made.
func (s *GateService) Reject(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Reject: %w", domain.ErrMissingReason)
	}
	if strings.TrimSpace(officer) == "" {
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Reject: %w: officer is required", domain.ErrValidation)
	}

	result, err := s.drivers.Reject(ctx, id, reason, officer)
	if err != nil {
		if errors.Is(err, domain.ErrStaleState) {
			s.metrics.IncStaleConflicts()
		}
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Reject: %w", err)
	}

	s.metrics.IncRejections()
	return result, nil
}

// Checkout records a driver leaving the yard: VERIFIED → COMPLETED with the
// checkout officer, note, and evidence persisted. Any other current status
// surfaces domain.ErrStaleState from the conditional update.
func (s *GateService) Checkout(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error) {
	if strings.TrimSpace(officer) == "" {
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Checkout: %w: officer is required", domain.ErrValidation)
	}

	result, err := s.drivers.Checkout(ctx, id, officer, note, evidence)
	if err != nil {
		if errors.Is(err, domain.ErrStaleState) {
			s.metrics.IncStaleConflicts()
		}
		return domain.DriverRecord{}, fmt.Errorf("service.GateService.Checkout: %w", err)
	}

	s.metrics.IncCheckouts()
	return result, nil
}
