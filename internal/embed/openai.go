// ABOUTME: OpenAI embedder over the go-openai client
// ABOUTME: Requests the configured dimension so the index width stays fixed
package embed

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const openAIDefaultModel = string(openai.SmallEmbedding3)

// OpenAI implements [Embedder] using the OpenAI embeddings API.
//
// text-embedding-3-* models accept a requested dimension, so the index
// can stay at 768 when switching providers.
type OpenAI struct {
	client *openai.Client
	model  openai.EmbeddingModel
	dim    int
}

var _ Embedder = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI embedder.
func NewOpenAI(apiKey string, opts ...Option) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cfg := config{
		model:      openAIDefaultModel,
		dim:        defaultDim,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(&cfg)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.HTTPClient = cfg.httpClient
	if cfg.baseURL != "" {
		clientCfg.BaseURL = cfg.baseURL
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.EmbeddingModel(cfg.model),
		dim:    cfg.dim,
	}, nil
}

// Embed returns the embedding for a single text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      o.model,
		Dimensions: o.dim,
	})
	if err != nil {
		return nil, fmt.Errorf("openai %s: %w", o.model, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai %s: %w", o.model, ErrNoEmbedding)
	}
	return resp.Data[0].Embedding, nil
}

// Dimension returns the requested vector dimensionality.
func (o *OpenAI) Dimension() int {
	return o.dim
}

// Model returns the OpenAI model identifier.
func (o *OpenAI) Model() string {
	return string(o.model)
}
