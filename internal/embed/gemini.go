// ABOUTME: Gemini embedder over the google.golang.org/genai client
// ABOUTME: Sends model and text only; task type and output size are opt-in
package embed

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Gemini embedding models.
const (
	// ModelGeminiEmbedding001 is the 768-dimension model the RAG index was built with.
	ModelGeminiEmbedding001 = "embedding-001"

	// ModelGeminiTextEmbedding004 is the newer 768-dimension text model.
	ModelGeminiTextEmbedding004 = "text-embedding-004"

	// TaskRetrievalDocument marks the text as a document to be retrieved later.
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// Gemini implements [Embedder] using the Gemini API embedContent endpoint.
type Gemini struct {
	models *genai.Models
	model  string
	dim    int
	config *genai.EmbedContentConfig
}

var _ Embedder = (*Gemini)(nil)

// NewGemini creates a Gemini embedder.
//
// The apiKey is required and can be obtained from:
// https://aistudio.google.com/app/apikey
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cfg := config{
		model:      ModelGeminiEmbedding001,
		dim:        defaultDim,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(&cfg)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.httpClient,
	}
	if cfg.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	// Requests carry only model and text unless a task type or size was asked for
	var embedCfg *genai.EmbedContentConfig
	if cfg.taskType != "" || cfg.explicitDim {
		embedCfg = &genai.EmbedContentConfig{TaskType: cfg.taskType}
		if cfg.explicitDim {
			embedCfg.OutputDimensionality = genai.Ptr(int32(cfg.dim))
		}
	}

	return &Gemini{
		models: client.Models,
		model:  cfg.model,
		dim:    cfg.dim,
		config: embedCfg,
	}, nil
}

// Embed returns the embedding for a single text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	resp, err := g.models.EmbedContent(ctx, g.model, genai.Text(text), g.config)
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", g.model, err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("gemini %s: %w", g.model, ErrNoEmbedding)
	}
	return resp.Embeddings[0].Values, nil
}

// Dimension returns the configured vector dimensionality.
func (g *Gemini) Dimension() int {
	return g.dim
}

// Model returns the Gemini model identifier (e.g., "embedding-001").
func (g *Gemini) Model() string {
	return g.model
}
