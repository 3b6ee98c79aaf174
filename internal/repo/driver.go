// Package repo contains all database access logic for the gate check service.
// No business logic lives here — only SQL and type mapping. Every transition
// update is conditional on the record's current status so concurrent officers
// can never silently overwrite each other (see domain.ErrStaleState).
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DriverRepo defines the persistence operations for driver records — the
// collaborator interface the gate lifecycle engine commits transitions
// through. The service layer depends on this interface, not the concrete
// Postgres implementation, which allows it to be unit-tested with a mock.
type DriverRepo interface {
	// Create inserts a new driver record and returns the persisted record
	// (with DB-generated id, created_at, and updated_at populated).
	// Used by the external registration ingress and by tests; the gate
	// workflow itself never creates records.
	Create(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error)

	// GetByID retrieves a single record by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error)

	// GetByBookingCode retrieves a single record by its booking code — the
	// payload carried in the scannable QR credential.
	// Returns domain.ErrNotFound if no record with that code exists.
	GetByBookingCode(ctx context.Context, code string) (domain.DriverRecord, error)

	// List returns the full roster, newest first.
	List(ctx context.Context) ([]domain.DriverRecord, error)

	// Approve transitions the record to VERIFIED, recording officer, note,
	// evidence, and a server-side timestamp. The update applies only if the
	// current status still allows the transition; otherwise it returns
	// domain.ErrStaleState (or domain.ErrNotFound if the id is unknown).
	Approve(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error)

	// Reject transitions the record to REJECTED, recording the reason and
	// officer. Same conditional semantics as Approve.
	Reject(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error)

	// Checkout transitions a VERIFIED record to COMPLETED, recording the
	// checkout officer, note, and evidence. Same conditional semantics.
	Checkout(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error)
}

// pgDriverRepo is the Postgres implementation of DriverRepo.
type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

// driverColumns is the canonical select list, shared by every query so
// scanDriver stays in lockstep with a single column order.
const driverColumns = `id, license_plate, name, company, status, booking_code, entry_type,
		document_file, slot_time, slot_date,
		verified_by, verify_note, verified_at, entry_evidence,
		reject_reason, rejected_by, rejected_at,
		checkout_by, checkout_note, checkout_at, exit_evidence,
		created_at, updated_at`

func (r *pgDriverRepo) Create(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error) {
	const q = `
		INSERT INTO drivers (license_plate, name, company, status, booking_code, entry_type,
		                     document_file, slot_time, slot_date)
		VALUES (@license_plate, @name, @company, @status, @booking_code, @entry_type,
		        @document_file, @slot_time, @slot_date)
		RETURNING ` + driverColumns

	status := rec.Status
	if status == "" {
		status = domain.StatusBooked
	}

	args := pgx.NamedArgs{
		"license_plate": rec.LicensePlate,
		"name":          rec.Name,
		"company":       rec.Company,
		"status":        string(status),
		"booking_code":  rec.BookingCode,
		"entry_type":    string(rec.EntryType),
		"document_file": rec.DocumentFile,
		"slot_time":     rec.SlotTime,
		"slot_date":     rec.SlotDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDriver(row)
	if err != nil {
		return domain.DriverRecord{}, fmt.Errorf("repo.DriverRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDriver(row)
	if err != nil {
		return domain.DriverRecord{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) GetByBookingCode(ctx context.Context, code string) (domain.DriverRecord, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers WHERE booking_code = @code`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code})
	result, err := scanDriver(row)
	if err != nil {
		return domain.DriverRecord{}, fmt.Errorf("repo.DriverRepo.GetByBookingCode: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) List(ctx context.Context) ([]domain.DriverRecord, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: %w", err)
	}
	defer rows.Close()

	var records []domain.DriverRecord
	for rows.Next() {
		rec, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DriverRepo.List: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: rows: %w", err)
	}

	return records, nil
}

func (r *pgDriverRepo) Approve(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error) {
	const q = `
		UPDATE drivers
		SET status         = @target,
		    verified_by    = @officer,
		    verify_note    = @note,
		    entry_evidence = @evidence,
		    verified_at    = now(),
		    updated_at     = now()
		WHERE id = @id AND status = ANY(@sources)
		RETURNING ` + driverColumns

	args := pgx.NamedArgs{
		"id":       id,
		"target":   string(domain.StatusVerified),
		"officer":  officer,
		"note":     note,
		"evidence": evidenceArg(evidence),
		"sources":  statusStrings(domain.TransitionSources(domain.StatusVerified)),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDriver(row)
	if err != nil {
		return domain.DriverRecord{}, r.transitionErr(ctx, id, "repo.DriverRepo.Approve", err)
	}
	return result, nil
}

func (r *pgDriverRepo) Reject(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error) {
	const q = `
		UPDATE drivers
		SET status        = @target,
		    reject_reason = @reason,
		    rejected_by   = @officer,
		    rejected_at   = now(),
		    updated_at    = now()
		WHERE id = @id AND status = ANY(@sources)
		RETURNING ` + driverColumns

	args := pgx.NamedArgs{
		"id":      id,
		"target":  string(domain.StatusRejected),
		"reason":  reason,
		"officer": officer,
		"sources": statusStrings(domain.TransitionSources(domain.StatusRejected)),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDriver(row)
	if err != nil {
		return domain.DriverRecord{}, r.transitionErr(ctx, id, "repo.DriverRepo.Reject", err)
	}
	return result, nil
}

func (r *pgDriverRepo) Checkout(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error) {
	const q = `
		UPDATE drivers
		SET status        = @target,
		    checkout_by   = @officer,
		    checkout_note = @note,
		    exit_evidence = @evidence,
		    checkout_at   = now(),
		    updated_at    = now()
		WHERE id = @id AND status = ANY(@sources)
		RETURNING ` + driverColumns

	args := pgx.NamedArgs{
		"id":       id,
		"target":   string(domain.StatusCompleted),
		"officer":  officer,
		"note":     note,
		"evidence": evidenceArg(evidence),
		"sources":  statusStrings(domain.TransitionSources(domain.StatusCompleted)),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDriver(row)
	if err != nil {
		return domain.DriverRecord{}, r.transitionErr(ctx, id, "repo.DriverRepo.Checkout", err)
	}
	return result, nil
}

// transitionErr maps a failed conditional update to the right sentinel.
// Zero rows means either the id does not exist (ErrNotFound) or it exists in
// a status outside the allowed sources — a concurrent change (ErrStaleState).
// A second lookup disambiguates; any other error passes through wrapped.
func (r *pgDriverRepo) transitionErr(ctx context.Context, id uuid.UUID, op string, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
		if errors.Is(lookupErr, domain.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, lookupErr)
	}
	return fmt.Errorf("%s: %w", op, domain.ErrStaleState)
}

// statusStrings converts statuses to plain strings for a = ANY(...) argument.
func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// evidenceArg ensures a nil evidence slice persists as an empty array rather
// than NULL (the column is NOT NULL).
func evidenceArg(evidence []string) []string {
	if evidence == nil {
		return []string{}
	}
	return evidence
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanDriver to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanDriver maps a single database row into a domain.DriverRecord.
// It handles the UUID and nullable timestamp conversions.
func scanDriver(s scanner) (domain.DriverRecord, error) {
	var (
		rec        domain.DriverRecord
		id         pgtype.UUID
		status     string
		entryType  string
		verifiedAt pgtype.Timestamptz
		rejectedAt pgtype.Timestamptz
		checkoutAt pgtype.Timestamptz
	)

	err := s.Scan(
		&id, &rec.LicensePlate, &rec.Name, &rec.Company, &status, &rec.BookingCode, &entryType,
		&rec.DocumentFile, &rec.SlotTime, &rec.SlotDate,
		&rec.VerifiedBy, &rec.VerifyNote, &verifiedAt, &rec.EntryEvidence,
		&rec.RejectReason, &rec.RejectedBy, &rejectedAt,
		&rec.CheckoutBy, &rec.CheckoutNote, &checkoutAt, &rec.ExitEvidence,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DriverRecord{}, domain.ErrNotFound
		}
		return domain.DriverRecord{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	rec.Status = domain.Status(status)
	rec.EntryType = domain.EntryType(entryType)
	if verifiedAt.Valid {
		t := verifiedAt.Time
		rec.VerifiedAt = &t
	}
	if rejectedAt.Valid {
		t := rejectedAt.Time
		rec.RejectedAt = &t
	}
	if checkoutAt.Valid {
		t := checkoutAt.Time
		rec.CheckoutAt = &t
	}

	return rec, nil
}
