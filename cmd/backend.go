package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitz/cockpit/internal/config"
	"github.com/fitz/cockpit/internal/docker"
	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/neo4j"
	"github.com/fitz/cockpit/internal/postgres"
	"github.com/fitz/cockpit/internal/sqlite"
	"github.com/fitz/cockpit/internal/tree"
)

// repository loads and saves whole cockpits. Load returns nil, nil when the
// cockpit does not exist yet.
type repository interface {
	Load(ctx context.Context, id string) (*models.Cockpit, error)
	Save(ctx context.Context, c *models.Cockpit) error
}

// backend is an opened persistence collaborator. repo is nil for the memory backend.
type backend struct {
	repo  repository
	close func()
}

// openBackend connects to the storage selected by cfg.Backend. With wait set,
// the Neo4j connection is retried until the database is up.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger, wait bool) (*backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Info("using in-memory cockpit, changes are not persisted")
		return &backend{close: func() {}}, nil

	case config.BackendSQLite:
		logger.Info("opening sqlite", "path", cfg.SQLitePath)
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &backend{
			repo:  sqlite.NewSnapshotStore(db),
			close: closeDB(db, logger),
		}, nil

	case config.BackendPostgres:
		logger.Info("connecting to PostgreSQL")
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return &backend{
			repo:  postgres.NewSnapshotStore(db),
			close: closeDB(db, logger),
		}, nil

	case config.BackendNeo4j:
		if cfg.ManageContainer {
			if err := ensureNeo4jContainer(ctx, cfg, logger); err != nil {
				return nil, err
			}
		}

		ncfg := neo4j.Config{
			URI:      cfg.Neo4jURI,
			Username: cfg.Neo4jUsername,
			Password: cfg.Neo4jPassword,
			Database: cfg.Neo4jDatabase,
		}
		logger.Info("connecting to Neo4j", "uri", ncfg.URI, "database", ncfg.Database)

		var (
			client *neo4j.Client
			err    error
		)
		if wait {
			logger.Info("waiting for Neo4j to be available...")
			client, err = neo4j.NewClientWithRetry(ctx, ncfg, nil)
		} else {
			client, err = neo4j.NewClient(ctx, ncfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
		}
		logger.Info("connected to Neo4j")

		return &backend{
			repo: neo4j.NewCockpitRepository(client),
			close: func() {
				if err := client.Close(context.Background()); err != nil {
					logger.Warn("failed to close Neo4j driver", "error", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func closeDB(db *sql.DB, logger *slog.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
}

// ensureNeo4jContainer ensures that the Neo4j Docker container is running.
func ensureNeo4jContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	mgr := docker.NewManager(nil, logger)
	containerCfg := docker.FromConfig(cfg)

	created, err := mgr.Ensure(ctx, containerCfg)
	if err != nil {
		return fmt.Errorf("failed to ensure Neo4j container: %w", err)
	}
	if !created {
		return nil
	}

	logger.Info("created Neo4j container, waiting for it to be ready", "name", containerCfg.Name)
	if err := mgr.Wait(ctx, containerCfg.Name, 60*time.Second); err != nil {
		logger.Warn("Neo4j container not ready yet", "name", containerCfg.Name, "error", err)
	}
	return nil
}

// openStore loads the configured cockpit, or starts a new one, and wraps it
// in a tree store.
func openStore(ctx context.Context, cfg *config.Config, repo repository, logger *slog.Logger) (*tree.Store, error) {
	var c *models.Cockpit
	if repo != nil {
		loaded, err := repo.Load(ctx, cfg.CockpitID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cockpit %s: %w", cfg.CockpitID, err)
		}
		c = loaded
	}
	if c == nil {
		logger.Info("starting new cockpit", "id", cfg.CockpitID, "name", cfg.CockpitName)
		c = &models.Cockpit{ID: cfg.CockpitID, Name: cfg.CockpitName}
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return tree.New(c,
		tree.WithLogger(logger),
		tree.WithPolicy(policy),
		tree.WithSyncName(cfg.SyncName),
	), nil
}
