// ABOUTME: Embed-then-upsert pipeline for seeding the RAG index
// ABOUTME: Provisions the index, embeds each record in order, writes one batch
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ezmedsafe/data-prep/internal/embed"
	"github.com/ezmedsafe/data-prep/internal/records"
	"github.com/ezmedsafe/data-prep/internal/vectordb"
)

// Options controls one pipeline run
type Options struct {
	Index     vectordb.IndexSpec
	Namespace string

	// FailFast returns upsert failures instead of reporting them
	FailFast bool
	// CreateOnLookupError treats any index lookup failure as absence
	CreateOnLookupError bool
	// ReadyTimeout bounds the wait for a freshly created index
	ReadyTimeout time.Duration
	// RequestTimeout bounds each remote call; zero means no per-call limit
	RequestTimeout time.Duration
}

// Report summarizes a run
type Report struct {
	IndexName    string
	IndexCreated bool
	Embedded     int
	Upserted     int
	// UpsertErr is set when the batch write failed in best-effort mode
	UpsertErr error
}

// Pipeline seeds a vector index from records. Clients are injected so tests can use fakes.
type Pipeline struct {
	embedder embed.Embedder
	store    vectordb.Service
	opts     Options
	logger   *zap.Logger
	newID    func() string
}

// New creates a pipeline
func New(embedder embed.Embedder, store vectordb.Service, opts Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		embedder: embedder,
		store:    store,
		opts:     opts,
		logger:   logger,
		newID:    func() string { return uuid.New().String() },
	}
}

// Run provisions the index, embeds every record and upserts them in a single batch.
// Lookup, creation and embedding failures abort the run before anything is written.
// An upsert failure is returned only in fail-fast mode; otherwise it lands in Report.UpsertErr.
func (p *Pipeline) Run(ctx context.Context, recs []records.Record) (*Report, error) {
	report := &Report{IndexName: p.opts.Index.Name}

	prov := NewProvisioner(p.store, p.logger)
	prov.CreateOnLookupError = p.opts.CreateOnLookupError
	prov.ReadyTimeout = p.opts.ReadyTimeout
	prov.RequestTimeout = p.opts.RequestTimeout

	idx, created, err := prov.Ensure(ctx, p.opts.Index)
	if err != nil {
		return nil, err
	}
	report.IndexCreated = created

	vectors, err := p.embedAll(ctx, recs)
	if err != nil {
		return nil, err
	}
	report.Embedded = len(vectors)

	count, err := p.write(ctx, idx, vectors)
	if err != nil {
		if p.opts.FailFast {
			return nil, err
		}
		p.logger.Error("upsert failed, continuing in best-effort mode",
			zap.String("index", p.opts.Index.Name),
			zap.Int("vectors", len(vectors)),
			zap.Error(err))
		report.UpsertErr = err
		return report, nil
	}
	report.Upserted = count

	p.logger.Info("upserted vectors",
		zap.String("index", p.opts.Index.Name),
		zap.String("namespace", p.opts.Namespace),
		zap.Int("count", count))
	return report, nil
}

// embedAll embeds records sequentially in order; the first failure aborts
func (p *Pipeline) embedAll(ctx context.Context, recs []records.Record) ([]vectordb.Vector, error) {
	vectors := make([]vectordb.Vector, 0, len(recs))
	for i, rec := range recs {
		callCtx, cancel := p.callContext(ctx)
		values, err := p.embedder.Embed(callCtx, rec.Text)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w for record %d of %d: %w", ErrEmbedding, i+1, len(recs), err)
		}

		p.logger.Debug("embedded record",
			zap.Int("record", i+1),
			zap.Int("dimension", len(values)))

		vectors = append(vectors, vectordb.Vector{
			ID:       p.newID(),
			Values:   values,
			Metadata: rec.Metadata,
		})
	}
	return vectors, nil
}

// write submits the whole batch in one upsert call
func (p *Pipeline) write(ctx context.Context, idx *vectordb.Index, vectors []vectordb.Vector) (int, error) {
	callCtx, cancel := p.callContext(ctx)
	defer cancel()

	count, err := p.store.Upsert(callCtx, idx, p.opts.Namespace, vectors)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUpsert, err)
	}
	return count, nil
}

func (p *Pipeline) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, p.opts.RequestTimeout)
}

// withTimeout derives a per-call context; a non-positive timeout only adds cancellation
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
