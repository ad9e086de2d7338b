// Package service is the person aggregate orchestrator. It composes the
// per-entity stores inside one transaction per operation so the four-entity
// graph (person, contacts, principal, account) is created and destroyed as a
// unit, and it assembles partial views of the same graph on the read path.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	directorymetrics "orgdir/internal/directory/metrics"
	"orgdir/internal/directory/ports"
	"orgdir/internal/directory/store"
	"orgdir/pkg/platform/audit"
)

const tracerName = "orgdir/internal/directory/service"

// Service orchestrates the person aggregate lifecycle.
//
// Writes run inside exactly one storage transaction each; reads compose the
// requested subgraphs without transactional semantics. The service holds no
// mutable state of its own.
type Service struct {
	tx            store.Tx
	persons       store.PersonQueries
	contacts      store.ContactQueries
	principals    store.PrincipalQueries
	accounts      store.AccountQueries
	facilities    ports.FacilityDirectory
	organizations ports.OrganizationDirectory
	auditStore    audit.Store
	metrics       *directorymetrics.Metrics
	logger        *slog.Logger
	tracer        trace.Tracer
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithAudit wires the audit sink. Audit writes are fail-closed: they run
// inside the mutating transaction and abort it on failure.
func WithAudit(auditStore audit.Store) Option {
	return func(s *Service) { s.auditStore = auditStore }
}

// WithMetrics wires the prometheus metrics.
func WithMetrics(m *directorymetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger wires a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAffiliations wires the read-only affiliation collaborators used by the
// read composer. Without them the facility/organization subgraphs stay empty.
func WithAffiliations(facilities ports.FacilityDirectory, organizations ports.OrganizationDirectory) Option {
	return func(s *Service) {
		s.facilities = facilities
		s.organizations = organizations
	}
}

// Queries bundles the standalone query stores the read path uses outside of
// transactions.
type Queries struct {
	Persons    store.PersonQueries
	Contacts   store.ContactQueries
	Principals store.PrincipalQueries
	Accounts   store.AccountQueries
}

// New constructs the orchestrator over a transactional boundary and the
// standalone query stores.
func New(tx store.Tx, queries Queries, opts ...Option) *Service {
	s := &Service{
		tx:         tx,
		persons:    queries.Persons,
		contacts:   queries.Contacts,
		principals: queries.Principals,
		accounts:   queries.Accounts,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) error {
	if s.auditStore == nil {
		return nil
	}
	if err := s.auditStore.Append(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit append failed",
			"action", event.Action,
			"person_id", event.PersonID.String(),
			"error", err,
		)
		return err
	}
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}
