package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kirana/backend/internal/infrastructure/config"
	"github.com/kirana/backend/internal/infrastructure/logger"
	"github.com/kirana/backend/internal/infrastructure/migration"
)

func main() {
	configPath := flag.String("config", "", "path to config directory")
	source := flag.String("source", "migrations", "path to migration files")
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	runner := migration.NewRunner(*source, cfg.Database.MigrateURL(), log)

	if *down {
		err = runner.Down()
	} else {
		err = runner.Up()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
}
