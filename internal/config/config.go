// Package config reads the seeding tools' settings from the environment,
// after loading an optional .env file.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hetulpatel/catalogseed/internal/storage/sqlite"
)

const DefaultSeedTopic = "catalog.seed"

type Config struct {
	SQLitePath   string
	LogLevel     string
	KafkaBrokers []string
	SeedTopic    string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() Config {
	return Config{
		SQLitePath:   envOr("SQLITE_PATH", sqlite.DefaultPath),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		SeedTopic:    envOr("KAFKA_SEED_TOPIC", DefaultSeedTopic),
	}
}

// PublishEnabled reports whether seed events should go to Kafka.
func (c Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOr(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
