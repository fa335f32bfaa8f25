package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/docchat/server/internal/config"
	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/rag"
	"codeberg.org/docchat/server/internal/vectorindex"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  ingest    - ingest text/markdown files as documents")
		fmt.Println("\nOptions:")
		fmt.Println("  --path <path>  - file or directory to ingest from")
		fmt.Println("  --clear        - reset the corpus before ingesting")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	svc, cleanup, err := newService(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize backends", "error", err)
	}

	defer cleanup()

	switch command {
	case "ingest":
		flags := config.ParseIngestFlags()
		if err := IngestFiles(ctx, svc, flags); err != nil {
			logger.Fatal("failed to ingest files", "error", err)
		}

	default:
		logger.Fatal("unknown command", "command", command)
	}
}

// wires the same backends the server uses, without the HTTP surface
func newService(ctx context.Context, cfg *config.Config) (*rag.Service, func(), error) {
	var db *pgxpool.Pool

	cleanup := func() {
		if db != nil {
			db.Close()
		}
	}

	if cfg.StoreBackend == config.BackendPostgres || cfg.IndexBackend == config.BackendPostgres {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create database pool: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, cleanup, fmt.Errorf("failed to ping database: %w", err)
		}

		db = pool
	}

	var store docstore.Store

	switch cfg.StoreBackend {
	case config.BackendMemory:
		store = docstore.NewMemoryStore()
	case config.BackendPostgres:
		pgStore, err := docstore.NewPostgresStore(ctx, db)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create postgres store: %w", err)
		}

		store = pgStore
	default:
		return nil, cleanup, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	var index vectorindex.Index

	switch cfg.IndexBackend {
	case config.BackendMemory:
		index = vectorindex.NewMemoryIndex(cfg.EmbeddingDim)
	case config.BackendPostgres:
		pgIndex, err := vectorindex.NewPostgresIndex(ctx, db, cfg.Collection, cfg.EmbeddingDim)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create postgres index: %w", err)
		}

		index = pgIndex
	case config.BackendQdrant:
		qIndex, err := vectorindex.NewQdrantIndex(ctx, vectorindex.QdrantConfig{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.Collection,
			Dimension:  cfg.EmbeddingDim,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create qdrant index: %w", err)
		}

		index = qIndex
	default:
		return nil, cleanup, fmt.Errorf("unknown index backend %q", cfg.IndexBackend)
	}

	model, err := llm.NewLLM(ctx)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if cfg.StoreBackend == config.BackendMemory && cfg.IndexBackend == config.BackendMemory {
		logger.Warn("memory backends selected, ingested data will not outlive this process")
	}

	return rag.NewService(store, index, model, *cfg), cleanup, nil
}
