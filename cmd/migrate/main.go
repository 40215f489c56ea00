package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pageza/receitas/backend/config"
	"github.com/pageza/receitas/backend/internal/database"
	"github.com/pageza/receitas/backend/internal/logging"
)

func main() {
	// Parse command line flags
	driver := flag.String("driver", "", "Override STORAGE_DRIVER (sqlite or postgres)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *driver != "" {
		cfg.StorageDriver = *driver
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch cfg.StorageDriver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		log.Info("storage driver has no schema, nothing to migrate", "driver", cfg.StorageDriver)
		return
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")
}
