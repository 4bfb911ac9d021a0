package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"kptshop/internal/config"
	mongorepo "kptshop/internal/repository/mongo"
	"kptshop/internal/seed"
	"kptshop/internal/service"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	cmd := &cli.Command{
		Name:  "seed",
		Usage: "Manage the catalogue database",
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "Load categories, folders and inventory from a YAML file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Value:   "seed.yaml",
						Usage:   "seed document to load",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runSeed(ctx, cfg, c.String("file"), logger)
				},
			},
			{
				Name:  "indexes",
				Usage: "Create collection indexes",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withConnection(ctx, cfg, logger, func(conn *mongorepo.Connection, names *mongorepo.CollectionNames) error {
						if err := mongorepo.EnsureIndexes(ctx, conn, names, logger); err != nil {
							return err
						}
						log.Println("✅ Indexes ready")
						return nil
					})
				},
			},
			{
				Name:  "clear",
				Usage: "Drop every collection",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm dropping all data"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					// SAFETY: Prevent destructive operations in production
					if cfg.Environment == "prod" {
						return errors.New("🚫 BLOCKED: cannot clear collections in production environment")
					}
					if !c.Bool("yes") {
						return errors.New("refusing to drop collections without --yes")
					}
					return withConnection(ctx, cfg, logger, func(conn *mongorepo.Connection, names *mongorepo.CollectionNames) error {
						log.Printf("🧹 Dropping collections (environment: %s, prefix: %q)", cfg.Environment, cfg.CollectionPrefix)
						if err := mongorepo.DropAll(ctx, conn, names, logger); err != nil {
							return err
						}
						log.Println("✅ Collections dropped")
						return nil
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSeed(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	doc, err := seed.Load(f)
	if err != nil {
		return err
	}

	log.Printf("🌱 Seeding database (environment: %s, prefix: %q)", cfg.Environment, cfg.CollectionPrefix)

	return withConnection(ctx, cfg, logger, func(conn *mongorepo.Connection, names *mongorepo.CollectionNames) error {
		// Indexes first so category names stay unique
		if err := mongorepo.EnsureIndexes(ctx, conn, names, logger); err != nil {
			return err
		}

		repos := mongorepo.New(&mongorepo.RepositoryConfig{
			Conn:        conn,
			Collections: names,
			Logger:      logger,
		})

		// Seeding goes through the service layer so paths are computed as over HTTP
		res, err := seed.Apply(ctx, doc, seed.Services{
			Folders:    service.NewFolderService(repos.Folders, repos.Images, logger),
			Categories: service.NewCategoryService(repos.Categories, logger),
			Inventory:  service.NewInventoryService(repos.Inventory, nil, logger),
		}, logger)
		if err != nil {
			return err
		}

		log.Printf("🎉 Seeding complete: %d categories (%d skipped), %d folders, %d items",
			res.Categories, res.Skipped, res.Folders, res.Items)
		return nil
	})
}

// withConnection connects to MongoDB for the length of fn
func withConnection(ctx context.Context, cfg *config.Config, logger *slog.Logger, fn func(*mongorepo.Connection, *mongorepo.CollectionNames) error) error {
	conn := mongorepo.NewConnection(cfg.MongoURI, cfg.MongoDatabase, logger)

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if _, err := conn.EnsureConnected(connectCtx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			logger.Warn("failed to close database connection", "error", err)
		}
	}()

	return fn(conn, mongorepo.NewCollectionNames(cfg.CollectionPrefix))
}
