package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/docchat/server/internal/config"
	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/llm"
	"codeberg.org/docchat/server/internal/rag"
	"codeberg.org/docchat/server/internal/vectorindex"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	var db *pgxpool.Pool

	if cfg.StoreBackend == config.BackendPostgres || cfg.IndexBackend == config.BackendPostgres {
		pool, err := newPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		db = pool
	}

	store, err := newStore(ctx, cfg, db)
	if err != nil {
		closePool(db)
		return nil, err
	}

	index, err := newIndex(ctx, cfg, db)
	if err != nil {
		closePool(db)
		return nil, err
	}

	model, err := llm.NewLLM(ctx)
	if err != nil {
		closePool(db)
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	router := gin.Default()

	server := &Server{
		db:     db,
		config: cfg,
		store:  store,
		index:  index,
		model:  model,
		svc:    rag.NewService(store, index, model, *cfg),
		router: router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// Close releases backend connections. safe to call with no postgres pool.
func (s *Server) Close() {
	closePool(s.db)
}

func newPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small for managed poolers with tight connection caps
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func newStore(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) (docstore.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return docstore.NewMemoryStore(), nil

	case config.BackendPostgres:
		store, err := docstore.NewPostgresStore(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres store: %w", err)
		}

		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newIndex(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) (vectorindex.Index, error) {
	switch cfg.IndexBackend {
	case config.BackendMemory:
		return vectorindex.NewMemoryIndex(cfg.EmbeddingDim), nil

	case config.BackendPostgres:
		index, err := vectorindex.NewPostgresIndex(ctx, db, cfg.Collection, cfg.EmbeddingDim)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres index: %w", err)
		}

		return index, nil

	case config.BackendQdrant:
		index, err := vectorindex.NewQdrantIndex(ctx, vectorindex.QdrantConfig{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.Collection,
			Dimension:  cfg.EmbeddingDim,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create qdrant index: %w", err)
		}

		return index, nil

	default:
		return nil, fmt.Errorf("unknown index backend %q", cfg.IndexBackend)
	}
}

func closePool(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}
