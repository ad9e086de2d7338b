// Package audit captures directory lifecycle events for downstream
// consumers. Events are written to a transactional outbox alongside the
// mutation that caused them and published to Kafka by the outbox worker.
package audit

import (
	"context"
	"time"

	id "orgdir/pkg/domain"
)

// Event is emitted from domain logic to record key actions. Keep it
// transport-agnostic so stores and sinks can fan out. Contact values and
// secrets never appear here.
type Event struct {
	Timestamp     time.Time
	PersonID      id.PersonID
	Action        Action
	PrincipalKind string
}

// Action names a directory lifecycle event.
type Action string

const (
	ActionPersonCreated      Action = "person_created"
	ActionAdminPersonCreated Action = "admin_person_created"
	ActionPersonUpdated      Action = "person_updated"
	ActionPersonDeleted      Action = "person_deleted"
)

// Store persists audit events. The postgres implementation writes to the
// outbox table and joins the caller's transaction when one is attached to
// the context.
type Store interface {
	Append(ctx context.Context, event Event) error
}
