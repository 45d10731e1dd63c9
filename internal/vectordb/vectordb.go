// ABOUTME: Vector database abstraction used by the seeding pipeline
// ABOUTME: Defines index descriptors, upsert vectors, and the Service contract
package vectordb

import (
	"context"
	"errors"
)

// ErrIndexNotFound is returned by DescribeIndex when no index has the given name
var ErrIndexNotFound = errors.New("vectordb: index not found")

// IndexSpec describes an index to create: name, dimension, metric and serverless placement
type IndexSpec struct {
	Name      string
	Dimension int
	Metric    string
	Cloud     string
	Region    string
}

// Index is a described remote index. Host addresses its data plane.
type Index struct {
	Name      string
	Host      string
	Dimension int
	Metric    string
	Ready     bool
}

// Vector is one upsert entry. ID has no meaning beyond satisfying the index key.
type Vector struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// Service is the subset of a vector database the pipeline needs
type Service interface {
	// DescribeIndex returns ErrIndexNotFound (possibly wrapped) when the index is absent
	DescribeIndex(ctx context.Context, name string) (*Index, error)

	// CreateIndex issues a single create request
	CreateIndex(ctx context.Context, spec IndexSpec) (*Index, error)

	// Upsert writes all vectors in one call and returns the count written
	Upsert(ctx context.Context, index *Index, namespace string, vectors []Vector) (int, error)
}
