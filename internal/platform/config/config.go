package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server binary needs from its environment.
type Config struct {
	// Addr is the listen address of the operational HTTP endpoint.
	Addr string
	// PostgresDSN is the connection string for the directory database. Empty
	// means run on the in-memory stores, which is only useful locally.
	PostgresDSN string
	// KafkaBrokers are the seed brokers for the audit event stream. Empty
	// disables the outbox publisher.
	KafkaBrokers []string
	// AuditTopic is the topic audit events are published to.
	AuditTopic string
	// TxTimeout bounds each aggregate transaction.
	TxTimeout time.Duration
	// ShutdownGrace bounds graceful shutdown of the HTTP server.
	ShutdownGrace time.Duration
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("ORGDIR_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("ORGDIR_POSTGRES_DSN"),
		AuditTopic:    envOr("ORGDIR_AUDIT_TOPIC", "orgdir.audit.persons"),
		TxTimeout:     durationOr("ORGDIR_TX_TIMEOUT", 5*time.Second),
		ShutdownGrace: durationOr("ORGDIR_SHUTDOWN_GRACE", 10*time.Second),
	}
	if brokers := os.Getenv("ORGDIR_KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
