package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
	"github.com/Andrna09/B2B-CHECK-IN/internal/repo"
)

// mockDriverRepo is a hand-written test double for repo.DriverRepo.
// Set only the method fields your test needs; unset methods panic, which
// doubles as an assertion that they were never called.
type mockDriverRepo struct {
	create           func(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error)
	getByBookingCode func(ctx context.Context, code string) (domain.DriverRecord, error)
	list             func(ctx context.Context) ([]domain.DriverRecord, error)
	approve          func(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error)
	reject           func(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error)
	checkout         func(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error)
}

func (m *mockDriverRepo) Create(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error) {
	return m.create(ctx, rec)
}
func (m *mockDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverRepo) GetByBookingCode(ctx context.Context, code string) (domain.DriverRecord, error) {
	return m.getByBookingCode(ctx, code)
}
func (m *mockDriverRepo) List(ctx context.Context) ([]domain.DriverRecord, error) {
	return m.list(ctx)
}
func (m *mockDriverRepo) Approve(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error) {
	return m.approve(ctx, id, officer, note, evidence)
}
func (m *mockDriverRepo) Reject(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error) {
	return m.reject(ctx, id, reason, officer)
}
func (m *mockDriverRepo) Checkout(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error) {
	return m.checkout(ctx, id, officer, note, evidence)
}

// compile-time check: mockDriverRepo must satisfy repo.DriverRepo.
var _ repo.DriverRepo = (*mockDriverRepo)(nil)

// bookedDriver returns a BOOKED record with sensible defaults.
// Callers override individual fields as needed.
func bookedDriver() domain.DriverRecord {
	return domain.DriverRecord{
		ID:           uuid.New(),
		LicensePlate: "B1234XY",
		Name:         "Budi Santoso",
		Company:      "PT Maju Jaya",
		Status:       domain.StatusBooked,
		BookingCode:  "BK-20260901-001",
		EntryType:    domain.EntryBooking,
	}
}
