package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
	"github.com/Andrna09/B2B-CHECK-IN/internal/handler"
)

// Mocks are test doubles with function fields; set only the methods your
// test needs — an unset method panics, which is itself an assertion that
// the handler did not call it.

type mockDriverServicer struct {
	register func(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error)
	getByID  func(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error)
}

func (m *mockDriverServicer) Register(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error) {
	return m.register(ctx, rec)
}
func (m *mockDriverServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error) {
	return m.getByID(ctx, id)
}

type mockGateServicer struct {
	approve  func(ctx context.Context, id uuid.UUID, officer, plateInput, note string, evidence []string) (domain.DriverRecord, error)
	reject   func(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error)
	checkout func(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error)
}

func (m *mockGateServicer) Approve(ctx context.Context, id uuid.UUID, officer, plateInput, note string, evidence []string) (domain.DriverRecord, error) {
	return m.approve(ctx, id, officer, plateInput, note, evidence)
}
func (m *mockGateServicer) Reject(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error) {
	return m.reject(ctx, id, reason, officer)
}
func (m *mockGateServicer) Checkout(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error) {
	return m.checkout(ctx, id, officer, note, evidence)
}

type mockResolver struct {
	resolve func(ctx context.Context, identifier string) (domain.DriverRecord, error)
}

func (m *mockResolver) Resolve(ctx context.Context, identifier string) (domain.DriverRecord, error) {
	return m.resolve(ctx, identifier)
}

// mockRoster is a fixed snapshot source.
type mockRoster struct {
	snapshot []domain.DriverRecord
	syncedAt time.Time
}

func (m *mockRoster) Snapshot() []domain.DriverRecord { return m.snapshot }
func (m *mockRoster) SyncedAt() time.Time             { return m.syncedAt }

var (
	_ handler.DriverServicer     = (*mockDriverServicer)(nil)
	_ handler.GateServicer       = (*mockGateServicer)(nil)
	_ handler.CredentialResolver = (*mockResolver)(nil)
	_ handler.RosterSource       = (*mockRoster)(nil)
)

// ---- helpers ---------------------------------------------------------------

type serverDeps struct {
	drivers  *mockDriverServicer
	gate     *mockGateServicer
	resolver *mockResolver
	roster   *mockRoster
}

// newHTTPHandler wires a Server with the given mocks into its chi router,
// mirroring how main.go wires it in production. Nil mocks become empty
// doubles so unrelated endpoints stay routable.
func newHTTPHandler(deps serverDeps) http.Handler {
	if deps.drivers == nil {
		deps.drivers = &mockDriverServicer{}
	}
	if deps.gate == nil {
		deps.gate = &mockGateServicer{}
	}
	if deps.resolver == nil {
		deps.resolver = &mockResolver{}
	}
	if deps.roster == nil {
		deps.roster = &mockRoster{}
	}
	return handler.NewServer(deps.drivers, deps.gate, deps.resolver, deps.roster).Routes()
}

func bookedDriver() domain.DriverRecord {
	return domain.DriverRecord{
		ID:           uuid.New(),
		LicensePlate: "B1234XY",
		Name:         "Budi Santoso",
		Company:      "PT Maju Jaya",
		Status:       domain.StatusBooked,
		BookingCode:  "BK-20260901-001",
		EntryType:    domain.EntryBooking,
		SlotTime:     "08:00 - 09:00",
		SlotDate:     "2026-09-01",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeRecord(t *testing.T, rec *httptest.ResponseRecorder) domain.DriverRecord {
	t.Helper()
	var out domain.DriverRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Error.Code
}

// ---- GET /api/v1/drivers ---------------------------------------------------

func TestListDrivers_GateInTab(t *testing.T) {
	booked := bookedDriver()
	verified := bookedDriver()
	verified.Status = domain.StatusVerified
	rejected := bookedDriver()
	rejected.Status = domain.StatusRejected

	synced := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	h := newHTTPHandler(serverDeps{roster: &mockRoster{
		snapshot: []domain.DriverRecord{booked, verified, rejected},
		syncedAt: synced,
	}})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers?tab=GATE_IN", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data     []domain.DriverRecord `json:"data"`
		SyncedAt time.Time             `json:"synced_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, booked.ID, resp.Data[0].ID)
	assert.True(t, resp.SyncedAt.Equal(synced))
}

func TestListDrivers_GateOutTab(t *testing.T) {
	booked := bookedDriver()
	verified := bookedDriver()
	verified.Status = domain.StatusVerified
	completed := bookedDriver()
	completed.Status = domain.StatusCompleted

	h := newHTTPHandler(serverDeps{roster: &mockRoster{
		snapshot: []domain.DriverRecord{booked, verified, completed},
	}})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers?tab=GATE_OUT", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.DriverRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, verified.ID, resp.Data[0].ID)
	assert.Equal(t, completed.ID, resp.Data[1].ID)
}

func TestListDrivers_NoTabReturnsFullSnapshot(t *testing.T) {
	booked := bookedDriver()
	rejected := bookedDriver()
	rejected.Status = domain.StatusRejected

	h := newHTTPHandler(serverDeps{roster: &mockRoster{
		snapshot: []domain.DriverRecord{booked, rejected},
	}})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.DriverRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestListDrivers_SearchNarrowsByName(t *testing.T) {
	budi := bookedDriver()
	siti := bookedDriver()
	siti.Name = "Siti Rahayu"
	siti.LicensePlate = "D5678AB"

	h := newHTTPHandler(serverDeps{roster: &mockRoster{
		snapshot: []domain.DriverRecord{budi, siti},
	}})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers?tab=GATE_IN&q=siti", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.DriverRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, siti.ID, resp.Data[0].ID)
}

func TestListDrivers_UnknownTab(t *testing.T) {
	h := newHTTPHandler(serverDeps{roster: &mockRoster{}})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers?tab=LUNCH", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

// ---- POST /api/v1/drivers --------------------------------------------------

func TestRegisterDriver_Created(t *testing.T) {
	created := bookedDriver()
	drivers := &mockDriverServicer{
		register: func(_ context.Context, rec domain.DriverRecord) (domain.DriverRecord, error) {
			assert.Equal(t, "B 1234 XY", rec.LicensePlate)
			assert.Equal(t, "Budi Santoso", rec.Name)
			return created, nil
		},
	}
	h := newHTTPHandler(serverDeps{drivers: drivers})

	body := jsonBody(t, map[string]string{
		"license_plate": "B 1234 XY",
		"name":          "Budi Santoso",
		"company":       "PT Maju Jaya",
		"booking_code":  "BK-20260901-001",
		"entry_type":    "BOOKING",
	})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, created.ID, decodeRecord(t, rec).ID)
}

func TestRegisterDriver_ValidationError(t *testing.T) {
	drivers := &mockDriverServicer{
		register: func(_ context.Context, _ domain.DriverRecord) (domain.DriverRecord, error) {
			return domain.DriverRecord{}, fmt.Errorf("%w: license plate is required", domain.ErrValidation)
		},
	}
	h := newHTTPHandler(serverDeps{drivers: drivers})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers", jsonBody(t, map[string]string{"name": "Budi"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestRegisterDriver_MalformedBody(t *testing.T) {
	h := newHTTPHandler(serverDeps{})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers", bytes.NewBufferString("{not json"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

// ---- POST /api/v1/drivers/resolve ------------------------------------------

func TestResolveDriver_ByBookingCode(t *testing.T) {
	booked := bookedDriver()
	resolver := &mockResolver{
		resolve: func(_ context.Context, identifier string) (domain.DriverRecord, error) {
			assert.Equal(t, "BK-20260901-001", identifier)
			return booked, nil
		},
	}
	h := newHTTPHandler(serverDeps{resolver: resolver})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/resolve",
		jsonBody(t, map[string]string{"identifier": "BK-20260901-001"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, booked.ID, decodeRecord(t, rec).ID)
}

func TestResolveDriver_NotFound(t *testing.T) {
	resolver := &mockResolver{
		resolve: func(_ context.Context, _ string) (domain.DriverRecord, error) {
			return domain.DriverRecord{}, fmt.Errorf("service.ResolverService.Resolve: %w", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(serverDeps{resolver: resolver})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/resolve",
		jsonBody(t, map[string]string{"identifier": "BK-NOPE"}))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

// ---- GET /api/v1/drivers/{id} ----------------------------------------------

func TestGetDriver_OK(t *testing.T) {
	booked := bookedDriver()
	drivers := &mockDriverServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.DriverRecord, error) {
			assert.Equal(t, booked.ID, id)
			return booked, nil
		},
	}
	h := newHTTPHandler(serverDeps{drivers: drivers})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers/"+booked.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, booked.BookingCode, decodeRecord(t, rec).BookingCode)
}

func TestGetDriver_InvalidID(t *testing.T) {
	h := newHTTPHandler(serverDeps{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers/not-a-uuid", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestGetDriver_NotFound(t *testing.T) {
	drivers := &mockDriverServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.DriverRecord, error) {
			return domain.DriverRecord{}, fmt.Errorf("service.DriverService.GetByID: %w", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(serverDeps{drivers: drivers})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /api/v1/drivers/{id}/pass -----------------------------------------

func TestGetDriverPass_QRCarriesBookingCode(t *testing.T) {
	booked := bookedDriver()
	drivers := &mockDriverServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.DriverRecord, error) {
			return booked, nil
		},
	}
	h := newHTTPHandler(serverDeps{drivers: drivers})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/drivers/"+booked.ID.String()+"/pass", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var pass struct {
		BookingCode  string `json:"booking_code"`
		QRContent    string `json:"qr_content"`
		LicensePlate string `json:"license_plate"`
		SlotTime     string `json:"slot_time"`
		SlotDate     string `json:"slot_date"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pass))
	assert.Equal(t, booked.BookingCode, pass.BookingCode)
	assert.Equal(t, booked.BookingCode, pass.QRContent)
	assert.Equal(t, "B1234XY", pass.LicensePlate)
	assert.Equal(t, "08:00 - 09:00", pass.SlotTime)
	assert.Equal(t, "2026-09-01", pass.SlotDate)
}

// ---- POST /api/v1/drivers/{id}/approve -------------------------------------

func TestApproveDriver_OK(t *testing.T) {
	verified := bookedDriver()
	verified.Status = domain.StatusVerified
	gate := &mockGateServicer{
		approve: func(_ context.Context, id uuid.UUID, officer, plateInput, note string, evidence []string) (domain.DriverRecord, error) {
			assert.Equal(t, verified.ID, id)
			assert.Equal(t, "Officer Dewi", officer)
			assert.Equal(t, "b 1234 xy", plateInput)
			assert.Equal(t, "docs ok", note)
			assert.Equal(t, []string{"gate-cam-1.jpg"}, evidence)
			return verified, nil
		},
	}
	h := newHTTPHandler(serverDeps{gate: gate})

	body := jsonBody(t, map[string]any{
		"officer":     "Officer Dewi",
		"plate_input": "b 1234 xy",
		"note":        "docs ok",
		"evidence":    []string{"gate-cam-1.jpg"},
	})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/"+verified.ID.String()+"/approve", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusVerified, decodeRecord(t, rec).Status)
}

func TestApproveDriver_PlateMismatch(t *testing.T) {
	gate := &mockGateServicer{
		approve: func(_ context.Context, _ uuid.UUID, _, _, _ string, _ []string) (domain.DriverRecord, error) {
			return domain.DriverRecord{}, fmt.Errorf("service.GateService.Approve: %w", domain.ErrPlateMismatch)
		},
	}
	h := newHTTPHandler(serverDeps{gate: gate})

	body := jsonBody(t, map[string]string{"officer": "Officer Dewi", "plate_input": "B9999ZZ"})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/"+uuid.NewString()+"/approve", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "plate_mismatch", errorCode(t, rec))
}

func TestApproveDriver_StaleState(t *testing.T) {
	gate := &mockGateServicer{
		approve: func(_ context.Context, _ uuid.UUID, _, _, _ string, _ []string) (domain.DriverRecord, error) {
			return domain.DriverRecord{}, fmt.Errorf("service.GateService.Approve: %w", domain.ErrStaleState)
		},
	}
	h := newHTTPHandler(serverDeps{gate: gate})

	body := jsonBody(t, map[string]string{"officer": "Officer Dewi", "plate_input": "B1234XY"})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/"+uuid.NewString()+"/approve", body)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "stale_state", errorCode(t, rec))
}

// ---- POST /api/v1/drivers/{id}/reject --------------------------------------

func TestRejectDriver_OK(t *testing.T) {
	rejected := bookedDriver()
	rejected.Status = domain.StatusRejected
	gate := &mockGateServicer{
		reject: func(_ context.Context, _ uuid.UUID, reason, officer string) (domain.DriverRecord, error) {
			assert.Equal(t, "expired license", reason)
			assert.Equal(t, "Officer Dewi", officer)
			return rejected, nil
		},
	}
	h := newHTTPHandler(serverDeps{gate: gate})

	body := jsonBody(t, map[string]string{"officer": "Officer Dewi", "reason": "expired license"})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/"+rejected.ID.String()+"/reject", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusRejected, decodeRecord(t, rec).Status)
}

func TestRejectDriver_MissingReason(t *testing.T) {
	gate := &mockGateServicer{
		reject: func(_ context.Context, _ uuid.UUID, _, _ string) (domain.DriverRecord, error) {
			return domain.DriverRecord{}, fmt.Errorf("service.GateService.Reject: %w", domain.ErrMissingReason)
		},
	}
	h := newHTTPHandler(serverDeps{gate: gate})

	body := jsonBody(t, map[string]string{"officer": "Officer Dewi", "reason": "   "})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/"+uuid.NewString()+"/reject", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "missing_reason", errorCode(t, rec))
}

// ---- POST /api/v1/drivers/{id}/checkout ------------------------------------

func TestCheckoutDriver_OK(t *testing.T) {
	completed := bookedDriver()
	completed.Status = domain.StatusCompleted
	gate := &mockGateServicer{
		checkout: func(_ context.Context, _ uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error) {
			assert.Equal(t, "Officer Dewi", officer)
			assert.Equal(t, "load sealed", note)
			assert.Equal(t, []string{"exit-cam.jpg"}, evidence)
			return completed, nil
		},
	}
	h := newHTTPHandler(serverDeps{gate: gate})

	body := jsonBody(t, map[string]any{
		"officer":  "Officer Dewi",
		"note":     "load sealed",
		"evidence": []string{"exit-cam.jpg"},
	})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/"+completed.ID.String()+"/checkout", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusCompleted, decodeRecord(t, rec).Status)
}

func TestCheckoutDriver_RequiresVerified(t *testing.T) {
	gate := &mockGateServicer{
		checkout: func(_ context.Context, _ uuid.UUID, _, _ string, _ []string) (domain.DriverRecord, error) {
			return domain.DriverRecord{}, fmt.Errorf("service.GateService.Checkout: %w", domain.ErrStaleState)
		},
	}
	h := newHTTPHandler(serverDeps{gate: gate})

	body := jsonBody(t, map[string]string{"officer": "Officer Dewi"})
	rec := doRequest(t, h, http.MethodPost, "/api/v1/drivers/"+uuid.NewString()+"/checkout", body)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "stale_state", errorCode(t, rec))
}
