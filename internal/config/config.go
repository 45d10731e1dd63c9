// ABOUTME: Centralized configuration for the RAG seeding pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Embedding providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Defaults shared with the CLI and tests
const (
	DefaultIndexName       = "ezmedsafe-rag-index"
	DefaultGeminiModel     = "embedding-001"
	DefaultOpenAIModel     = "text-embedding-3-small"
	DefaultVectorDimension = 768
	DefaultMetric          = "cosine"
	DefaultCloud           = "aws"
	DefaultRegion          = "us-east-1"
)

var (
	// ErrMissingCredentials is returned when a required credential is absent or empty
	ErrMissingCredentials = errors.New("missing required environment variables")
	// ErrInvalidValue is returned when a set variable cannot be parsed
	ErrInvalidValue = errors.New("invalid environment variable values")
)

// Config holds all configuration for one seeding run
type Config struct {
	// Credentials
	GeminiAPIKey   string
	PineconeAPIKey string
	OpenAIAPIKey   string

	// Embedding settings
	EmbeddingProvider string
	EmbeddingModel    string
	VectorDimension   int

	// Pinecone settings
	IndexName    string
	Namespace    string
	Metric       string
	Cloud        string
	Region       string
	ReadyTimeout time.Duration

	// Run settings
	RequestTimeout      time.Duration
	FailFast            bool
	CreateOnLookupError bool
	RecordsFile         string

	// invalid lists variables that were set but could not be parsed
	invalid []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	provider := strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderGemini))
	env := &envParser{}

	cfg := &Config{
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		PineconeAPIKey:      os.Getenv("PINECONE_API_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		EmbeddingProvider:   provider,
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", defaultModel(provider)),
		VectorDimension:     env.getEnvInt("VECTOR_DIMENSION", DefaultVectorDimension),
		IndexName:           getEnv("PINECONE_INDEX_NAME", DefaultIndexName),
		Namespace:           os.Getenv("PINECONE_NAMESPACE"),
		Metric:              strings.ToLower(getEnv("PINECONE_METRIC", DefaultMetric)),
		Cloud:               getEnv("PINECONE_CLOUD", DefaultCloud),
		Region:              getEnv("PINECONE_REGION", DefaultRegion),
		ReadyTimeout:        env.getEnvDuration("PINECONE_READY_TIMEOUT", 2*time.Minute),
		RequestTimeout:      env.getEnvDuration("SEED_REQUEST_TIMEOUT", 30*time.Second),
		FailFast:            env.getEnvBool("SEED_FAIL_FAST", false),
		CreateOnLookupError: env.getEnvBool("PINECONE_CREATE_ON_LOOKUP_ERROR", false),
		RecordsFile:         os.Getenv("SEED_RECORDS_FILE"),
	}
	cfg.invalid = env.invalid

	return cfg, cfg.Validate()
}

// Validate checks credentials first so a missing key halts before anything else is inspected
func (c *Config) Validate() error {
	if missing := c.missingCredentials(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	if len(c.invalid) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidValue, strings.Join(c.invalid, ", "))
	}
	switch c.EmbeddingProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("EMBEDDING_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.EmbeddingProvider)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	switch c.Metric {
	case "cosine", "euclidean", "dotproduct":
	default:
		return fmt.Errorf("PINECONE_METRIC must be cosine, euclidean or dotproduct, got %q", c.Metric)
	}
	if c.IndexName == "" {
		return fmt.Errorf("PINECONE_INDEX_NAME must not be empty")
	}
	if c.ReadyTimeout < 0 {
		return fmt.Errorf("PINECONE_READY_TIMEOUT must not be negative, got %v", c.ReadyTimeout)
	}
	return nil
}

func (c *Config) missingCredentials() []string {
	var missing []string
	switch c.EmbeddingProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		if c.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	}
	if c.PineconeAPIKey == "" {
		missing = append(missing, "PINECONE_API_KEY")
	}
	return missing
}

func defaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// envParser reads typed variables and remembers the ones that failed to parse
type envParser struct {
	invalid []string
}

func (p *envParser) reject(key, value, want string) {
	p.invalid = append(p.invalid, fmt.Sprintf("%s=%q (want %s)", key, value, want))
}

// getEnvBool accepts the strconv.ParseBool forms (true, TRUE, 1, f, ...)
func (p *envParser) getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.reject(key, v, "a boolean")
		return defaultVal
	}
	return b
}

func (p *envParser) getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		p.reject(key, v, "an integer")
		return defaultVal
	}
	return i
}

// getEnvDuration requires a unit, e.g. 30s or 2m
func (p *envParser) getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.reject(key, v, "a duration such as 30s or 2m")
		return defaultVal
	}
	return d
}
