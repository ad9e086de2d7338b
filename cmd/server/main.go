package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/twmb/franz-go/pkg/kgo"

	"orgdir/internal/directory/store/postgres"
	"orgdir/internal/platform/config"
	"orgdir/internal/platform/httpserver"
	"orgdir/internal/platform/logger"
	auditworker "orgdir/pkg/platform/audit/worker"
)

// main runs the operational side of the directory module: schema migrations,
// the outbox publisher and the health/metrics endpoint. The aggregate
// orchestrator itself is a library; API layers construct it from
// internal/directory/service and mount their own transport.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.PostgresDSN != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
	} else {
		log.Warn("no postgres DSN configured, outbox publishing disabled")
	}

	if db != nil && len(cfg.KafkaBrokers) > 0 {
		if err := runPublisher(ctx, cfg, db, log); err != nil {
			log.Error("outbox publisher setup failed", "error", err)
			os.Exit(1)
		}
	}

	srv := httpserver.New(cfg.Addr, httpserver.OpsRouter())
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shut down cleanly")
}

// runPublisher wires the Kafka client and starts the outbox drain loop in the
// background. The client and loop stop with ctx.
func runPublisher(ctx context.Context, cfg config.Config, db *sql.DB, log *slog.Logger) error {
	client, err := kgo.NewClient(kgo.SeedBrokers(cfg.KafkaBrokers...))
	if err != nil {
		return err
	}

	w := auditworker.New(db, client, cfg.AuditTopic, log)
	if err := w.EnsureTopic(ctx, 1, 1); err != nil {
		client.Close()
		return err
	}

	go func() {
		defer client.Close()
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("outbox worker stopped", "error", err)
		}
	}()
	return nil
}
