package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/facetrace/internal/config"
	"github.com/kozaktomas/facetrace/internal/detect"
	"github.com/kozaktomas/facetrace/internal/recognizer"
	"github.com/kozaktomas/facetrace/internal/registry"
	"github.com/kozaktomas/facetrace/internal/registry/postgres"
)

// openStore opens the identity registry selected by the --memory flag.
// The returned closer is safe to call even for the in-memory store.
func openStore(ctx context.Context, cfg *config.Config) (registry.Store, func(), error) {
	if useMemoryRegistry {
		fmt.Println("Using in-memory registry (records are lost on exit)")
		return registry.NewMemory(), func() {}, nil
	}

	fmt.Println("Connecting to PostgreSQL...")
	pool, err := postgres.NewPool(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := postgres.NewPersonRepository(pool)

	fmt.Println("Building in-memory HNSW index for face matching...")
	if err := repo.EnableIndex(ctx); err != nil {
		fmt.Printf("Warning: Failed to build HNSW index: %v\n", err)
		fmt.Println("Face matching will use full registry scans (slower)")
	} else {
		fmt.Printf("HNSW index built with %d people\n", repo.IndexCount())
	}

	return repo, func() { _ = pool.Close() }, nil
}

// buildPipeline wires a recognition pipeline from configuration and a store.
func buildPipeline(cfg *config.Config, store registry.Store) (*recognizer.Pipeline, error) {
	detector, err := detect.NewDetectorFromFile(cfg.Face.CascadePath, detect.DefaultParams())
	if err != nil {
		return nil, fmt.Errorf("failed to load cascade model: %w", err)
	}

	return recognizer.New(detector, store, recognizer.Options{
		MinQuality:     cfg.Face.MinQuality,
		MatchThreshold: cfg.Face.MatchThreshold,
		Colors:         cfg.Palette.Colors,
	}), nil
}
