// ABOUTME: Hand-written fakes for the embedder and vector database
// ABOUTME: Count calls and capture arguments so tests can assert on them
package ingest

import (
	"context"
	"errors"
	"sync"

	"github.com/ezmedsafe/data-prep/internal/vectordb"
)

var errBoom = errors.New("boom")

// fakeEmbedder returns zero vectors and can fail on a chosen call (1-based)
type fakeEmbedder struct {
	mu     sync.Mutex
	dim    int
	failOn int
	texts  []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	if f.failOn > 0 && len(f.texts) == f.failOn {
		return nil, errBoom
	}
	return make([]float32, f.dim), nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }
func (f *fakeEmbedder) Model() string  { return "fake-embedding" }

func (f *fakeEmbedder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

// fakeStore is an in-memory vectordb.Service
type fakeStore struct {
	mu sync.Mutex

	exists      bool
	describeErr error
	createErr   error
	upsertErr   error
	// notReadyPolls is how many describes after a create report not ready
	notReadyPolls int

	describes int
	creates    []vectordb.IndexSpec
	upserts    [][]vectordb.Vector
	namespaces []string
}

func newExistingStore() *fakeStore { return &fakeStore{exists: true} }

func (f *fakeStore) DescribeIndex(ctx context.Context, name string) (*vectordb.Index, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.describes++
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if !f.exists {
		return nil, vectordb.ErrIndexNotFound
	}
	if f.notReadyPolls > 0 {
		f.notReadyPolls--
		return &vectordb.Index{Name: name}, nil
	}
	return f.index(name), nil
}

func (f *fakeStore) CreateIndex(ctx context.Context, spec vectordb.IndexSpec) (*vectordb.Index, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, spec)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.exists = true
	// immediately after creation the lookup error no longer applies
	f.describeErr = nil
	return &vectordb.Index{Name: spec.Name, Dimension: spec.Dimension, Metric: spec.Metric}, nil
}

func (f *fakeStore) Upsert(ctx context.Context, idx *vectordb.Index, namespace string, vectors []vectordb.Vector) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, vectors)
	f.namespaces = append(f.namespaces, namespace)
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	return len(vectors), nil
}

func (f *fakeStore) index(name string) *vectordb.Index {
	return &vectordb.Index{
		Name:      name,
		Host:      name + ".svc.test",
		Dimension: 768,
		Metric:    "cosine",
		Ready:     true,
	}
}
