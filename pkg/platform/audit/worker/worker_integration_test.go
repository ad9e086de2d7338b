//go:build integration

package worker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kgo"

	directorycontract "orgdir/contracts/directory"
	"orgdir/internal/platform/logger"
	id "orgdir/pkg/domain"
	"orgdir/pkg/platform/audit"
	auditpg "orgdir/pkg/platform/audit/store/postgres"
	"orgdir/pkg/platform/audit/worker"
	"orgdir/pkg/testutil/containers"
)

const testTopic = "orgdir.audit.persons.test"

type WorkerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	broker   *redpanda.Container
	client   *kgo.Client
	worker   *worker.Worker
	sink     *auditpg.Store
}

func TestWorkerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupSuite() {
	ctx := context.Background()
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.sink = auditpg.New(s.postgres.DB)

	broker, err := redpanda.Run(ctx, "redpandadata/redpanda:v24.1.7")
	s.Require().NoError(err)
	s.broker = broker

	seed, err := broker.KafkaSeedBroker(ctx)
	s.Require().NoError(err)

	client, err := kgo.NewClient(
		kgo.SeedBrokers(seed),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	s.client = client

	s.worker = worker.New(s.postgres.DB, client, testTopic, logger.New(),
		worker.WithBatchSize(10))
	s.Require().NoError(s.worker.EnsureTopic(ctx, 1, 1))
}

func (s *WorkerSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
	if s.broker != nil {
		_ = s.broker.Terminate(context.Background())
	}
}

func (s *WorkerSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.postgres.DB.ExecContext(ctx, "TRUNCATE TABLE outbox")
	s.Require().NoError(err)
}

func (s *WorkerSuite) TestDrainPublishesAndMarksRows() {
	ctx := context.Background()
	personID := id.NewPersonID()
	err := s.sink.Append(ctx, audit.Event{
		Timestamp:     time.Now(),
		PersonID:      personID,
		Action:        audit.ActionPersonCreated,
		PrincipalKind: "",
	})
	s.Require().NoError(err)

	published, err := s.worker.Drain(ctx)
	s.Require().NoError(err)
	s.Equal(1, published)

	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	fetches := s.client.PollFetches(fetchCtx)
	s.Require().NoError(fetches.Err())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var event directorycontract.PersonEvent
	s.Require().NoError(json.Unmarshal(records[0].Value, &event))
	s.Equal(directorycontract.ContractVersion, event.ContractVersion)
	s.Equal(string(audit.ActionPersonCreated), event.Action)
	s.Equal(personID.String(), event.PersonID)
	s.Equal(personID.String(), string(records[0].Key), "records are keyed by aggregate for per-person ordering")

	var unpublished int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx,
		"SELECT count(*) FROM outbox WHERE published_at IS NULL").Scan(&unpublished))
	s.Zero(unpublished)
}

func (s *WorkerSuite) TestDrainIsIdempotentOnEmptyOutbox() {
	published, err := s.worker.Drain(context.Background())
	s.Require().NoError(err)
	s.Zero(published)
}
