// ABOUTME: Index provisioner: ensures the target index exists before any write
// ABOUTME: Tri-state lookup (exists / absent / failed), single create, optional ready wait
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ezmedsafe/data-prep/internal/vectordb"
)

// Error kinds surfaced by a run
var (
	ErrIndexLookup = errors.New("index lookup failed")
	ErrIndexCreate = errors.New("index creation failed")
	ErrIndexReady  = errors.New("index not ready")
	ErrEmbedding   = errors.New("embedding failed")
	ErrUpsert      = errors.New("upsert failed")
)

// LookupResult is the outcome of checking whether an index exists
type LookupResult int

const (
	LookupExists LookupResult = iota
	LookupAbsent
	LookupFailed
)

func (r LookupResult) String() string {
	switch r {
	case LookupExists:
		return "exists"
	case LookupAbsent:
		return "absent"
	default:
		return "lookup-failed"
	}
}

const defaultPollInterval = 2 * time.Second

// Provisioner makes sure an index exists. It never compares dimension or metric
// of an index that is already there.
type Provisioner struct {
	svc    vectordb.Service
	logger *zap.Logger

	// CreateOnLookupError treats any lookup failure as absence
	CreateOnLookupError bool
	// ReadyTimeout bounds the wait after a create; zero skips the wait
	ReadyTimeout time.Duration
	// PollInterval is the delay between readiness checks
	PollInterval time.Duration
	// RequestTimeout bounds each describe or create call
	RequestTimeout time.Duration
}

// NewProvisioner creates a provisioner over the given service
func NewProvisioner(svc vectordb.Service, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		svc:          svc,
		logger:       logger,
		PollInterval: defaultPollInterval,
	}
}

// Lookup checks for an index by name
func (p *Provisioner) Lookup(ctx context.Context, name string) (LookupResult, *vectordb.Index, error) {
	callCtx, cancel := withTimeout(ctx, p.RequestTimeout)
	defer cancel()

	idx, err := p.svc.DescribeIndex(callCtx, name)
	switch {
	case err == nil:
		return LookupExists, idx, nil
	case errors.Is(err, vectordb.ErrIndexNotFound):
		return LookupAbsent, nil, nil
	default:
		return LookupFailed, nil, err
	}
}

// Ensure returns the index named by spec, creating it if absent.
// created reports whether this call issued the create request.
func (p *Provisioner) Ensure(ctx context.Context, spec vectordb.IndexSpec) (idx *vectordb.Index, created bool, err error) {
	result, idx, err := p.Lookup(ctx, spec.Name)
	switch result {
	case LookupExists:
		p.logger.Info("index found",
			zap.String("index", spec.Name),
			zap.Int("dimension", idx.Dimension),
			zap.String("metric", idx.Metric))
		return idx, false, nil
	case LookupFailed:
		if !p.CreateOnLookupError {
			return nil, false, fmt.Errorf("%w for %s: %w", ErrIndexLookup, spec.Name, err)
		}
		p.logger.Warn("index lookup failed, treating as absent",
			zap.String("index", spec.Name),
			zap.Error(err))
	}

	p.logger.Info("creating index",
		zap.String("index", spec.Name),
		zap.Int("dimension", spec.Dimension),
		zap.String("metric", spec.Metric))

	createCtx, cancel := withTimeout(ctx, p.RequestTimeout)
	idx, err = p.svc.CreateIndex(createCtx, spec)
	cancel()
	if err != nil {
		return nil, false, fmt.Errorf("%w for %s: %w", ErrIndexCreate, spec.Name, err)
	}

	idx, err = p.waitReady(ctx, spec.Name, idx)
	if err != nil {
		return nil, true, err
	}

	p.logger.Info("index created", zap.String("index", spec.Name), zap.String("host", idx.Host))
	return idx, true, nil
}

// waitReady polls DescribeIndex until the index is ready. Poll errors are returned as-is.
func (p *Provisioner) waitReady(ctx context.Context, name string, idx *vectordb.Index) (*vectordb.Index, error) {
	if p.ReadyTimeout <= 0 {
		if idx == nil {
			idx = &vectordb.Index{Name: name}
		}
		return idx, nil
	}
	if idx != nil && idx.Ready && idx.Host != "" {
		return idx, nil
	}

	interval := p.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ctx, cancel := context.WithTimeout(ctx, p.ReadyTimeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s after %v: %w", ErrIndexReady, name, p.ReadyTimeout, ctx.Err())
		case <-ticker.C:
		}

		callCtx, cancelCall := withTimeout(ctx, p.RequestTimeout)
		current, err := p.svc.DescribeIndex(callCtx, name)
		cancelCall()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrIndexReady, name, err)
		}
		if current.Ready && current.Host != "" {
			return current, nil
		}
		p.logger.Debug("waiting for index", zap.String("index", name))
	}
}
