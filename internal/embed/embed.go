// ABOUTME: Embedder interface and shared options for remote embedding clients
// ABOUTME: Implementations live in gemini.go and openai.go

// Package embed turns record text into dense vectors through a remote
// embedding API.
//
// Two implementations are provided:
//
//   - [Gemini]: Google Gemini embeddings (embedding-001 by default)
//   - [OpenAI]: OpenAI text-embedding-3-* with a requested dimension
//
// Each Embed call is one remote request; no retries are attempted.
package embed

import (
	"context"
	"errors"
	"net/http"
)

// Embedder converts text into a dense float32 vector.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the dimensionality the embedder is configured for.
	Dimension() int

	// Model returns the remote model identifier.
	Model() string
}

// Common errors.
var (
	// ErrEmptyInput is returned when the input text is empty.
	ErrEmptyInput = errors.New("embed: empty input")

	// ErrNoEmbedding is returned when the service answers without a vector.
	ErrNoEmbedding = errors.New("embed: no embedding returned")
)

// defaultDim matches the dimension of the EzMedSafe RAG index.
const defaultDim = 768

// config holds shared configuration for embedder implementations.
type config struct {
	model       string
	dim         int
	explicitDim bool
	taskType    string
	baseURL     string
	httpClient  *http.Client
}

// Option configures an embedder.
type Option func(*config)

// WithModel sets the embedding model name.
func WithModel(model string) Option {
	return func(c *config) {
		if model != "" {
			c.model = model
		}
	}
}

// WithDimension requests a specific output dimensionality.
// Gemini only forwards it when set explicitly; embedding-001 is fixed at 768.
func WithDimension(dim int) Option {
	return func(c *config) {
		c.dim = dim
		c.explicitDim = true
	}
}

// WithTaskType sets the Gemini task type hint (ignored by OpenAI). Unset by default.
func WithTaskType(taskType string) Option {
	return func(c *config) { c.taskType = taskType }
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}
