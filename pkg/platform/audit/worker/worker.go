// Package worker publishes outbox rows to Kafka. It is the second half of
// the transactional outbox: directory mutations append events inside their
// own transaction, and this worker drains unpublished rows in the
// background. At-least-once delivery; consumers deduplicate on event ID.
package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	defaultPollInterval = time.Second
	defaultBatchSize    = 100
)

// Worker drains the outbox table into a Kafka topic.
type Worker struct {
	db       *sql.DB
	client   *kgo.Client
	topic    string
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

// Option configures the worker.
type Option func(*Worker)

// WithPollInterval overrides how often the outbox is polled.
func WithPollInterval(d time.Duration) Option {
	return func(w *Worker) { w.interval = d }
}

// WithBatchSize overrides how many rows one poll drains.
func WithBatchSize(n int) Option {
	return func(w *Worker) { w.batch = n }
}

// New builds an outbox worker over an existing Kafka client.
func New(db *sql.DB, client *kgo.Client, topic string, logger *slog.Logger, opts ...Option) *Worker {
	w := &Worker{
		db:       db,
		client:   client,
		topic:    topic,
		logger:   logger,
		interval: defaultPollInterval,
		batch:    defaultBatchSize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// EnsureTopic creates the audit topic when it does not exist yet.
func (w *Worker) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(w.client)
	resp, err := adm.CreateTopics(ctx, partitions, replication, nil, w.topic)
	if err != nil {
		return fmt.Errorf("create topic %q: %w", w.topic, err)
	}
	for _, res := range resp {
		if res.Err != nil && !errors.Is(res.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %q: %w", res.Topic, res.Err)
		}
	}
	return nil
}

// Run polls the outbox until ctx is cancelled. Publish failures are logged
// and retried on the next tick; rows are only marked published after Kafka
// acknowledged them.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if published, err := w.Drain(ctx); err != nil {
				w.logger.ErrorContext(ctx, "outbox drain failed", "error", err)
			} else if published > 0 {
				w.logger.DebugContext(ctx, "outbox drained", "published", published)
			}
		}
	}
}

// Drain publishes one batch of unpublished rows and returns how many were
// published. Exported for testability; Run calls it on every tick.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin outbox drain: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const selectQuery = `
		SELECT id, aggregate_id, event_type, payload
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := tx.QueryContext(ctx, selectQuery, w.batch)
	if err != nil {
		return 0, fmt.Errorf("select outbox rows: %w", err)
	}

	type outboxRow struct {
		id          string
		aggregateID string
		eventType   string
		payload     []byte
	}
	var pending []outboxRow
	for rows.Next() {
		var row outboxRow
		if err := rows.Scan(&row.id, &row.aggregateID, &row.eventType, &row.payload); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan outbox row: %w", err)
		}
		pending = append(pending, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("select outbox rows: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	for _, row := range pending {
		record := &kgo.Record{
			Topic: w.topic,
			Key:   []byte(row.aggregateID),
			Value: row.payload,
		}
		if err := w.client.ProduceSync(ctx, record).FirstErr(); err != nil {
			return 0, fmt.Errorf("produce %s event: %w", row.eventType, err)
		}
		const markQuery = `UPDATE outbox SET published_at = $2 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, markQuery, row.id, time.Now()); err != nil {
			return 0, fmt.Errorf("mark outbox row published: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit outbox drain: %w", err)
	}
	return len(pending), nil
}
