// ABOUTME: Builds the embedding and Pinecone clients from configuration
// ABOUTME: The runner constructor is a package variable so tests can swap in fakes
package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ezmedsafe/data-prep/internal/config"
	"github.com/ezmedsafe/data-prep/internal/embed"
	"github.com/ezmedsafe/data-prep/internal/ingest"
	"github.com/ezmedsafe/data-prep/internal/records"
	"github.com/ezmedsafe/data-prep/internal/vectordb"
)

// Runner runs one seeding pass
type Runner interface {
	Run(ctx context.Context, recs []records.Record) (*ingest.Report, error)
}

var newRunner = buildPipeline

func buildPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Runner, error) {
	embedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding client: %w", err)
	}

	store, err := vectordb.NewPinecone(cfg.PineconeAPIKey, "")
	if err != nil {
		return nil, fmt.Errorf("initializing Pinecone client: %w", err)
	}

	logger.Debug("clients ready",
		zap.String("provider", cfg.EmbeddingProvider),
		zap.String("model", embedder.Model()),
		zap.Int("dimension", cfg.VectorDimension))

	return ingest.New(embedder, store, pipelineOptions(cfg), logger), nil
}

func newEmbedder(ctx context.Context, cfg *config.Config) (embed.Embedder, error) {
	opts := []embed.Option{embed.WithModel(cfg.EmbeddingModel)}

	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		opts = append(opts, embed.WithDimension(cfg.VectorDimension))
		return embed.NewOpenAI(cfg.OpenAIAPIKey, opts...)
	default:
		// embedding-001 has a fixed 768-wide output; only ask for a size when it differs
		if cfg.VectorDimension != config.DefaultVectorDimension {
			opts = append(opts, embed.WithDimension(cfg.VectorDimension))
		}
		return embed.NewGemini(ctx, cfg.GeminiAPIKey, opts...)
	}
}

func pipelineOptions(cfg *config.Config) ingest.Options {
	return ingest.Options{
		Index: vectordb.IndexSpec{
			Name:      cfg.IndexName,
			Dimension: cfg.VectorDimension,
			Metric:    cfg.Metric,
			Cloud:     cfg.Cloud,
			Region:    cfg.Region,
		},
		Namespace:           cfg.Namespace,
		FailFast:            cfg.FailFast,
		CreateOnLookupError: cfg.CreateOnLookupError,
		ReadyTimeout:        cfg.ReadyTimeout,
		RequestTimeout:      cfg.RequestTimeout,
	}
}

// loadRecords reads the record file when one is configured, else the bundled set
func loadRecords(path string) ([]records.Record, error) {
	if path == "" {
		return records.Default(), nil
	}
	recs, err := records.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	return recs, nil
}
