// This is the main entry point of the Recipe Finder application.
// It's responsible for loading configuration, picking the storage backend,
// running migrations and starting the HTTP server, all behind a small CLI.
//
// Analogy to Nest.js: This file is similar to `main.ts` in a Nest.js application,
// where the application instance is created and bootstrapped to listen for requests.
// @title Recipe Finder API
// @version 1.0
// @description Private, owner-scoped recipe collections with paginated multi-filter search.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	// `godotenv` loads environment variables from a .env file, useful for development.
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/recipefinder-go/auth"
	"github.com/user/recipefinder-go/config"
	"github.com/user/recipefinder-go/db"
	_ "github.com/user/recipefinder-go/docs" // Registers the Swagger spec.
	"github.com/user/recipefinder-go/logging"
	"github.com/user/recipefinder-go/recipes"
	"github.com/user/recipefinder-go/server"
)

func main() {
	app := &cli.App{
		Name:  "recipefinder",
		Usage: "owner-scoped recipe catalog API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before reading configuration",
			},
		},
		Before: loadEnvFile,
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back database migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending migrations",
						Action: migrateUp,
					},
					{
						Name:  "down",
						Usage: "roll back the most recent migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
						},
						Action: migrateDown,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.New(os.Stderr, "error").Error(context.Background(), "recipefinder failed", "error", err.Error())
		os.Exit(1)
	}
}

// loadEnvFile loads the dotenv file when it exists. In production, variables
// are usually set directly, so a missing default file is not an error.
func loadEnvFile(c *cli.Context) error {
	path := c.String("env-file")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !c.IsSet("env-file") {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// backend bundles the stores chosen by STORAGE_BACKEND.
type backend struct {
	owners  auth.OwnerStore
	recipes recipes.Repository
	health  func(ctx context.Context) error
	close   func()
}

func openBackend(ctx context.Context, cfg *config.AppConfig, log logging.Logger) (*backend, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn(ctx, "using in-memory storage, data is lost on restart")
		return &backend{
			owners:  auth.NewMemoryOwnerStore(),
			recipes: recipes.NewMemoryRepository(),
			close:   func() {},
		}, nil
	}

	if err := db.RunMigrations(cfg.DB, log); err != nil {
		return nil, err
	}
	pool, err := db.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		owners:  auth.NewPostgresOwnerStore(pool),
		recipes: recipes.NewPostgresRepository(pool),
		health:  pool.Ping,
		close:   pool.Close,
	}, nil
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log := logging.New(os.Stdout, cfg.Server.LogLevel)

	// Cancelled on SIGINT (Ctrl+C) or SIGTERM, which starts the graceful shutdown.
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	router := server.NewRouter(server.Deps{
		Config:  cfg,
		Logger:  log,
		Owners:  be.owners,
		Recipes: be.recipes,
		Health:  be.health,
	})
	return server.Run(ctx, cfg.Server.Port, router, log)
}

func postgresConfig() (*config.AppConfig, logging.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Storage != config.StoragePostgres {
		return nil, nil, fmt.Errorf("migrations need STORAGE_BACKEND=%s, got %q", config.StoragePostgres, cfg.Storage)
	}
	return cfg, logging.New(os.Stdout, cfg.Server.LogLevel), nil
}

func migrateUp(*cli.Context) error {
	cfg, log, err := postgresConfig()
	if err != nil {
		return err
	}
	return db.RunMigrations(cfg.DB, log)
}

func migrateDown(c *cli.Context) error {
	cfg, log, err := postgresConfig()
	if err != nil {
		return err
	}
	return db.RollbackMigrations(cfg.DB, c.Int("steps"), log)
}
