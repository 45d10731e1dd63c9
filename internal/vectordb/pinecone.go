// ABOUTME: Pinecone implementation of the vectordb Service
// ABOUTME: Serverless index describe/create over REST, batch upsert over the index data plane
package vectordb

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// sourceTag identifies this tool in Pinecone request attribution
const sourceTag = "ezmedsafe_data_prep"

// Pinecone wraps the Pinecone Go SDK client
type Pinecone struct {
	client *pinecone.Client
}

var _ Service = (*Pinecone)(nil)

// NewPinecone creates a Pinecone service. host overrides the control plane URL and may be empty.
func NewPinecone(apiKey, host string) (*Pinecone, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("pinecone API key is required")
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:    apiKey,
		Host:      host,
		SourceTag: sourceTag,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone client: %w", err)
	}
	return &Pinecone{client: client}, nil
}

// DescribeIndex looks an index up by name
func (p *Pinecone) DescribeIndex(ctx context.Context, name string) (*Index, error) {
	idx, err := p.client.DescribeIndex(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, name)
		}
		return nil, fmt.Errorf("describing index %s: %w", name, err)
	}
	return fromPineconeIndex(idx), nil
}

// CreateIndex creates a dense serverless index
func (p *Pinecone) CreateIndex(ctx context.Context, spec IndexSpec) (*Index, error) {
	dim := int32(spec.Dimension)
	metric := pinecone.IndexMetric(spec.Metric)

	idx, err := p.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:      spec.Name,
		Dimension: &dim,
		Metric:    &metric,
		Cloud:     pinecone.Cloud(spec.Cloud),
		Region:    spec.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating index %s: %w", spec.Name, err)
	}
	return fromPineconeIndex(idx), nil
}

// Upsert opens a data plane connection to the index host and writes all vectors in one request
func (p *Pinecone) Upsert(ctx context.Context, index *Index, namespace string, vectors []Vector) (int, error) {
	if index == nil || index.Host == "" {
		return 0, fmt.Errorf("upsert: index host is unknown")
	}

	pcVectors, err := toPineconeVectors(vectors)
	if err != nil {
		return 0, err
	}

	conn, err := p.client.Index(pinecone.NewIndexConnParams{
		Host:      index.Host,
		Namespace: namespace,
	})
	if err != nil {
		return 0, fmt.Errorf("connecting to index %s: %w", index.Name, err)
	}
	defer func() { _ = conn.Close() }()

	count, err := conn.UpsertVectors(ctx, pcVectors)
	if err != nil {
		return 0, fmt.Errorf("upserting %d vectors to %s: %w", len(vectors), index.Name, err)
	}
	return int(count), nil
}

// isNotFound reports whether the control plane answered 404
func isNotFound(err error) bool {
	var pcErr *pinecone.PineconeError
	return errors.As(err, &pcErr) && pcErr.Code == http.StatusNotFound
}

func fromPineconeIndex(idx *pinecone.Index) *Index {
	if idx == nil {
		return nil
	}
	out := &Index{
		Name:   idx.Name,
		Host:   idx.Host,
		Metric: string(idx.Metric),
	}
	if idx.Dimension != nil {
		out.Dimension = int(*idx.Dimension)
	}
	if idx.Status != nil {
		out.Ready = idx.Status.Ready
	}
	return out
}

func toPineconeVectors(vectors []Vector) ([]*pinecone.Vector, error) {
	out := make([]*pinecone.Vector, 0, len(vectors))
	for _, v := range vectors {
		fields := make(map[string]interface{}, len(v.Metadata))
		for k, val := range v.Metadata {
			fields[k] = val
		}
		metadata, err := structpb.NewStruct(fields)
		if err != nil {
			return nil, fmt.Errorf("converting metadata for %s: %w", v.ID, err)
		}

		values := v.Values
		out = append(out, &pinecone.Vector{
			Id:       v.ID,
			Values:   &values,
			Metadata: metadata,
		})
	}
	return out, nil
}
