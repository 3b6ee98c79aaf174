// Package handler implements the HTTP handlers for the gate check API.
// All handlers are methods on Server; methods are split into domain-specific
// files (health.go, driver.go) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
	"github.com/Andrna09/B2B-CHECK-IN/spec"
)

// DriverServicer defines the registration and read operations the driver
// handlers depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types".
// It lets handler tests inject a mock without touching the database or
// service layer.
type DriverServicer interface {
	Register(ctx context.Context, rec domain.DriverRecord) (domain.DriverRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.DriverRecord, error)
}

// GateServicer defines the lifecycle transitions the gate handlers depend on.
type GateServicer interface {
	Approve(ctx context.Context, id uuid.UUID, officer, plateInput, note string, evidence []string) (domain.DriverRecord, error)
	Reject(ctx context.Context, id uuid.UUID, reason, officer string) (domain.DriverRecord, error)
	Checkout(ctx context.Context, id uuid.UUID, officer, note string, evidence []string) (domain.DriverRecord, error)
}

// CredentialResolver resolves a scanned or typed credential to a record.
type CredentialResolver interface {
	Resolve(ctx context.Context, identifier string) (domain.DriverRecord, error)
}

// RosterSource provides the most recent roster snapshot. Implemented by
// roster.Refresher; list requests read the snapshot instead of hitting the
// database on every poll.
type RosterSource interface {
	Snapshot() []domain.DriverRecord
	SyncedAt() time.Time
}

// Server holds the dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	drivers  DriverServicer
	gate     GateServicer
	resolver CredentialResolver
	roster   RosterSource
}

// NewServer constructs the Server with all its dependencies.
func NewServer(drivers DriverServicer, gate GateServicer, resolver CredentialResolver, roster RosterSource) *Server {
	return &Server{drivers: drivers, gate: gate, resolver: resolver, roster: roster}
}

// Routes mounts every endpoint on a chi router. Wire middleware around the
// returned router in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/api/v1/drivers", func(r chi.Router) {
		r.Get("/", s.ListDrivers)
		r.Post("/", s.RegisterDriver)
		r.Post("/resolve", s.ResolveDriver)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDriver)
			r.Get("/pass", s.GetDriverPass)
			r.Post("/approve", s.ApproveDriver)
			r.Post("/reject", s.RejectDriver)
			r.Post("/checkout", s.CheckoutDriver)
		})
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
