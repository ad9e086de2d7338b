// Package postgres implements audit.Store with the transactional outbox
// pattern. Events land in the outbox table inside the same transaction as
// the directory mutation, and the outbox worker publishes them to Kafka.
// Kafka is the source of truth for downstream consumers.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	directorycontract "orgdir/contracts/directory"
	audit "orgdir/pkg/platform/audit"
	txcontext "orgdir/pkg/platform/tx"
)

// Store writes audit events to the outbox table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execer joins the caller's transaction when one is attached to the context,
// so the event commits and rolls back with the mutation it describes.
func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append writes one event to the outbox for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload := directorycontract.PersonEvent{
		ContractVersion: directorycontract.ContractVersion,
		Action:          string(event.Action),
		PersonID:        event.PersonID.String(),
		PrincipalKind:   event.PrincipalKind,
		OccurredAt:      event.Timestamp.Format(time.RFC3339Nano),
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	const query = `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		eventID, "person", event.PersonID.String(), string(event.Action), payloadBytes, event.Timestamp)
	if err != nil {
		return fmt.Errorf("append outbox event: %w", err)
	}
	return nil
}
