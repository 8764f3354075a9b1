package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/pageza/recipp/backend/config"
	"github.com/pageza/recipp/backend/internal/database"
	"github.com/pageza/recipp/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed_recipes",
		Usage: "Reconcile the recipes table with a JSON seed file",
		Description: `Reads a JSON array of recipes and aligns the recipes table with it.

Entries whose id is absent are inserted with that id. Entries that exist but
differ are overwritten; star counts are left untouched. Identical entries are
skipped, so running the same file twice writes nothing the second time.

Flags override the configuration loaded from config.yaml, .env and the
environment.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to the JSON seed file (default: SEED_FILE)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database path (default: DB_PATH)",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Database driver: sqlite, sqlite-nocgo or postgres (default: DB_DRIVER)",
			},
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "PostgreSQL connection URL (default: DATABASE_URL)",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.IsSet("file") {
		cfg.SeedFile = cmd.String("file")
	}
	if cmd.IsSet("db") {
		cfg.DBPath = cmd.String("db")
	}
	if cmd.IsSet("driver") {
		cfg.DBDriver = cmd.String("driver")
	}
	if cmd.IsSet("database-url") {
		cfg.DatabaseURL = cmd.String("database-url")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	result, err := service.NewSeedReconciler(db).SyncFile(ctx, cfg.SeedFile)
	if err != nil {
		return err
	}

	fmt.Printf("Database synchronized from %s: %d inserted, %d updated, %d unchanged\n",
		cfg.SeedFile, result.Inserted, result.Updated, result.Unchanged)
	return nil
}
