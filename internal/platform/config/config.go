// Package config builds runtime configuration from the environment so main
// stays lean. Every backend is optional: with nothing set the server runs on
// the in-memory substrate with no broker, which is the local-dev setup.
package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	PostgresURL     string
	RedisURL        string
	KafkaBrokers    []string
	KafkaAuditTopic string
	ShutdownTimeout time.Duration
}

// FromEnv reads configuration from environment variables.
func FromEnv() Server {
	addr := os.Getenv("SEGUROS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "seguros.audit"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return Server{
		Addr:            addr,
		PostgresURL:     os.Getenv("POSTGRES_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaBrokers:    brokers,
		KafkaAuditTopic: topic,
		ShutdownTimeout: 10 * time.Second,
	}
}
