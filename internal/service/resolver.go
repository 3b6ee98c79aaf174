// Package service contains the business logic for the gate check service.
// Services validate inputs, enforce the lifecycle invariants, and orchestrate
// repo calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
	"github.com/Andrna09/B2B-CHECK-IN/internal/repo"
)

// ResolverService turns a scanned or typed credential into a candidate
// driver record for the gate-in workflow.
type ResolverService struct {
	drivers repo.DriverRepo
}

// NewResolverService constructs a ResolverService backed by the provided repo.
func NewResolverService(r repo.DriverRepo) *ResolverService {
	return &ResolverService{drivers: r}
}

// Resolve looks up a record by exact identifier: a record UUID or, failing
// that, a booking code (the QR payload carries the booking code).
//
// Only records in a gate-in resolvable status (BOOKED, CHECKED_IN) are
// returned. "No such record" and "record in an ineligible status" are both
// reported as domain.ErrNotFound — the officer-facing message does not
// distinguish them, and neither does this layer.
func (s *ResolverService) Resolve(ctx context.Context, identifier string) (domain.DriverRecord, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return domain.DriverRecord{}, fmt.Errorf("service.ResolverService.Resolve: %w", domain.ErrNotFound)
	}

	rec, err := s.lookup(ctx, identifier)
	if err != nil {
		return domain.DriverRecord{}, fmt.Errorf("service.ResolverService.Resolve: %w", err)
	}

	if !rec.Status.GateInResolvable() {
		return domain.DriverRecord{}, fmt.Errorf("service.ResolverService.Resolve: %w", domain.ErrNotFound)
	}
	return rec, nil
}

func (s *ResolverService) lookup(ctx context.Context, identifier string) (domain.DriverRecord, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		return s.drivers.GetByID(ctx, id)
	}
	return s.drivers.GetByBookingCode(ctx, identifier)
}

// Search is the manual-lookup path: a pure, case-insensitive partial match
// over the supplied roster snapshot. Plates match whitespace-insensitively
// ("b 12" finds "B1234XY"); names match as plain substrings. Only gate-in
// resolvable records are offered. The snapshot is never mutated.
func (s *ResolverService) Search(roster []domain.DriverRecord, query string) []domain.DriverRecord {
	normPlateQ := domain.NormalizePlate(query)
	nameQ := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.DriverRecord, 0, len(roster))
	for _, d := range roster {
		if !d.Status.GateInResolvable() {
			continue
		}
		if nameQ == "" ||
			strings.Contains(domain.NormalizePlate(d.LicensePlate), normPlateQ) ||
			strings.Contains(strings.ToLower(d.Name), nameQ) {
			out = append(out, d)
		}
	}
	return out
}
