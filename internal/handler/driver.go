package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
)

// rosterResponse is the body for GET /api/v1/drivers. SyncedAt tells the
// dashboard how fresh the snapshot is; clients poll this endpoint on an
// interval and must treat the data as a snapshot, not live state.
type rosterResponse struct {
	Data     []domain.DriverRecord `json:"data"`
	SyncedAt time.Time             `json:"synced_at"`
}

// ListDrivers handles GET /api/v1/drivers.
// Optional ?tab=GATE_IN|GATE_OUT selects a gate worklist; optional ?q=
// narrows by plate or name. Without a tab the full snapshot is returned,
// including REJECTED records that belong to neither worklist.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	snapshot := s.roster.Snapshot()
	search := r.URL.Query().Get("q")

	var data []domain.DriverRecord
	if rawTab := r.URL.Query().Get("tab"); rawTab != "" {
		tab := domain.Tab(strings.ToUpper(rawTab))
		if !tab.Valid() {
			requestError(w, "unknown tab: must be GATE_IN or GATE_OUT")
			return
		}
		data = domain.FilterRoster(snapshot, tab, search)
	} else {
		data = searchAll(snapshot, search)
	}

	writeJSON(w, http.StatusOK, rosterResponse{Data: data, SyncedAt: s.roster.SyncedAt()})
}

// searchAll narrows the whole snapshot by plate or name, case-insensitively.
func searchAll(all []domain.DriverRecord, search string) []domain.DriverRecord {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.DriverRecord, 0, len(all))
	for _, d := range all {
		if q == "" ||
			strings.Contains(strings.ToLower(d.LicensePlate), q) ||
			strings.Contains(strings.ToLower(d.Name), q) {
			out = append(out, d)
		}
	}
	return out
}

// registerDriverRequest is the body for POST /api/v1/drivers. The external
// booking process is the expected caller; the gate workflow never registers.
type registerDriverRequest struct {
	LicensePlate string `json:"license_plate"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	BookingCode  string `json:"booking_code"`
	EntryType    string `json:"entry_type"`
	DocumentFile string `json:"document_file"`
	SlotTime     string `json:"slot_time"`
	SlotDate     string `json:"slot_date"`
}

// RegisterDriver handles POST /api/v1/drivers.
func (s *Server) RegisterDriver(w http.ResponseWriter, r *http.Request) {
	var req registerDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.drivers.Register(r.Context(), domain.DriverRecord{
		LicensePlate: req.LicensePlate,
		Name:         req.Name,
		Company:      req.Company,
		BookingCode:  req.BookingCode,
		EntryType:    domain.EntryType(req.EntryType),
		DocumentFile: req.DocumentFile,
		SlotTime:     req.SlotTime,
		SlotDate:     req.SlotDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// resolveRequest is the body for POST /api/v1/drivers/resolve. The identifier
// is a record UUID or a booking code (the QR payload carries the booking code).
type resolveRequest struct {
	Identifier string `json:"identifier"`
}

// ResolveDriver handles POST /api/v1/drivers/resolve.
// Only records still awaiting gate-in resolution come back; anything else is
// a 404, whether the record is missing or merely past that point.
func (s *Server) ResolveDriver(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	rec, err := s.resolver.Resolve(r.Context(), req.Identifier)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GetDriver handles GET /api/v1/drivers/{id}.
func (s *Server) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := s.drivers.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// passResponse is the access-pass payload for ticket rendering. QRContent is
// the string to encode in the QR image; scanning it back through the resolve
// endpoint returns this record.
type passResponse struct {
	BookingCode  string        `json:"booking_code"`
	QRContent    string        `json:"qr_content"`
	Name         string        `json:"name"`
	Company      string        `json:"company,omitempty"`
	LicensePlate string        `json:"license_plate"`
	SlotTime     string        `json:"slot_time,omitempty"`
	SlotDate     string        `json:"slot_date,omitempty"`
	Status       domain.Status `json:"status"`
}

// GetDriverPass handles GET /api/v1/drivers/{id}/pass.
func (s *Server) GetDriverPass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := s.drivers.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, passResponse{
		BookingCode:  rec.BookingCode,
		QRContent:    rec.BookingCode,
		Name:         rec.Name,
		Company:      rec.Company,
		LicensePlate: rec.LicensePlate,
		SlotTime:     rec.SlotTime,
		SlotDate:     rec.SlotDate,
		Status:       rec.Status,
	})
}

// approveRequest is the body for POST /api/v1/drivers/{id}/approve.
// PlateInput is the raw officer-entered (or OCR) plate string; the match
// against the registered plate is computed server-side at commit time.
type approveRequest struct {
	Officer    string   `json:"officer"`
	PlateInput string   `json:"plate_input"`
	Note       string   `json:"note"`
	Evidence   []string `json:"evidence"`
}

// ApproveDriver handles POST /api/v1/drivers/{id}/approve.
func (s *Server) ApproveDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	rec, err := s.gate.Approve(r.Context(), id, req.Officer, req.PlateInput, req.Note, req.Evidence)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// rejectRequest is the body for POST /api/v1/drivers/{id}/reject.
type rejectRequest struct {
	Officer string `json:"officer"`
	Reason  string `json:"reason"`
}

// RejectDriver handles POST /api/v1/drivers/{id}/reject.
func (s *Server) RejectDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	rec, err := s.gate.Reject(r.Context(), id, req.Reason, req.Officer)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// checkoutRequest is the body for POST /api/v1/drivers/{id}/checkout.
type checkoutRequest struct {
	Officer  string   `json:"officer"`
	Note     string   `json:"note"`
	Evidence []string `json:"evidence"`
}

// CheckoutDriver handles POST /api/v1/drivers/{id}/checkout.
func (s *Server) CheckoutDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	rec, err := s.gate.Checkout(r.Context(), id, req.Officer, req.Note, req.Evidence)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// pathID parses the {id} path parameter. On failure it writes a 422 and
// returns ok=false; the handler must return immediately.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		requestError(w, "invalid driver id")
		return uuid.Nil, false
	}
	return id, true
}
