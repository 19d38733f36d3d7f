package main

import (
	"context"

	"github.com/hetulpatel/catalogseed/internal/config"
	"github.com/hetulpatel/catalogseed/internal/logging"
	"github.com/hetulpatel/catalogseed/internal/storage/sqlite"
)

func main() {
	cfg := config.Load()
	logging.SetLevel(cfg.LogLevel)

	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logging.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if err := store.CreateTables(context.Background()); err != nil {
		logging.Fatalf("create tables: %v", err)
	}
	logging.Infof("users and files tables created at %s", store.Path())
}
