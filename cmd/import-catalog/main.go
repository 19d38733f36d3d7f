package main

import (
	"context"
	"os"

	"github.com/hetulpatel/catalogseed/internal/config"
	"github.com/hetulpatel/catalogseed/internal/kafka"
	"github.com/hetulpatel/catalogseed/internal/logging"
	"github.com/hetulpatel/catalogseed/internal/seed"
)

func main() {
	cfg := config.Load()
	logging.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	seeder := &seed.Seeder{StorePath: cfg.SQLitePath}
	if cfg.PublishEnabled() {
		if err := kafka.EnsureTopic(ctx, cfg.KafkaBrokers, cfg.SeedTopic); err != nil {
			logging.Errorf("ensure topic %s: %v", cfg.SeedTopic, err)
		}
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.SeedTopic)
		defer writer.Close()
		seeder.Events = writer
	}

	if _, err := seeder.ImportCatalog(ctx, os.Args[1:]); err != nil {
		logging.Fatalf("import catalog: %v", err)
	}
}
