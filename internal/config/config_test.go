// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing, credential checks and validation
package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var seedEnvKeys = []string{
	"GEMINI_API_KEY",
	"PINECONE_API_KEY",
	"OPENAI_API_KEY",
	"PINECONE_INDEX_NAME",
	"EMBEDDING_PROVIDER",
	"EMBEDDING_MODEL",
	"VECTOR_DIMENSION",
	"PINECONE_METRIC",
	"PINECONE_CLOUD",
	"PINECONE_REGION",
	"PINECONE_NAMESPACE",
	"PINECONE_READY_TIMEOUT",
	"SEED_REQUEST_TIMEOUT",
	"SEED_FAIL_FAST",
	"PINECONE_CREATE_ON_LOOKUP_ERROR",
	"SEED_RECORDS_FILE",
}

// clearEnv blanks every variable Load reads; empty values count as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range seedEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("PINECONE_API_KEY", "pinecone-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.IndexName != "ezmedsafe-rag-index" {
		t.Errorf("IndexName = %s, want ezmedsafe-rag-index", cfg.IndexName)
	}
	if cfg.EmbeddingProvider != ProviderGemini {
		t.Errorf("EmbeddingProvider = %s, want gemini", cfg.EmbeddingProvider)
	}
	if cfg.EmbeddingModel != "embedding-001" {
		t.Errorf("EmbeddingModel = %s, want embedding-001", cfg.EmbeddingModel)
	}
	if cfg.VectorDimension != 768 {
		t.Errorf("VectorDimension = %d, want 768", cfg.VectorDimension)
	}
	if cfg.Metric != "cosine" {
		t.Errorf("Metric = %s, want cosine", cfg.Metric)
	}
	if cfg.Cloud != "aws" || cfg.Region != "us-east-1" {
		t.Errorf("Cloud/Region = %s/%s, want aws/us-east-1", cfg.Cloud, cfg.Region)
	}
	if cfg.Namespace != "" {
		t.Errorf("Namespace = %q, want empty", cfg.Namespace)
	}
	if cfg.ReadyTimeout != 2*time.Minute {
		t.Errorf("ReadyTimeout = %v, want 2m", cfg.ReadyTimeout)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.FailFast {
		t.Error("FailFast = true, want false")
	}
	if cfg.CreateOnLookupError {
		t.Error("CreateOnLookupError = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PINECONE_API_KEY", "pinecone-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("EMBEDDING_PROVIDER", "OpenAI")
	t.Setenv("PINECONE_INDEX_NAME", "custom-index")
	t.Setenv("VECTOR_DIMENSION", "1536")
	t.Setenv("PINECONE_METRIC", "dotproduct")
	t.Setenv("PINECONE_NAMESPACE", "ddi")
	t.Setenv("PINECONE_READY_TIMEOUT", "0s")
	t.Setenv("SEED_REQUEST_TIMEOUT", "5s")
	t.Setenv("SEED_FAIL_FAST", "1")
	t.Setenv("PINECONE_CREATE_ON_LOOKUP_ERROR", "true")
	t.Setenv("SEED_RECORDS_FILE", "records.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.EmbeddingProvider != ProviderOpenAI {
		t.Errorf("EmbeddingProvider = %s, want openai", cfg.EmbeddingProvider)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.IndexName != "custom-index" {
		t.Errorf("IndexName = %s, want custom-index", cfg.IndexName)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
	if cfg.Metric != "dotproduct" {
		t.Errorf("Metric = %s, want dotproduct", cfg.Metric)
	}
	if cfg.Namespace != "ddi" {
		t.Errorf("Namespace = %s, want ddi", cfg.Namespace)
	}
	if cfg.ReadyTimeout != 0 {
		t.Errorf("ReadyTimeout = %v, want 0", cfg.ReadyTimeout)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if !cfg.FailFast {
		t.Error("FailFast = false, want true")
	}
	if !cfg.CreateOnLookupError {
		t.Error("CreateOnLookupError = false, want true")
	}
	if cfg.RecordsFile != "records.yaml" {
		t.Errorf("RecordsFile = %s, want records.yaml", cfg.RecordsFile)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantMissing []string
	}{
		{
			name:        "both missing",
			env:         map[string]string{},
			wantMissing: []string{"GEMINI_API_KEY", "PINECONE_API_KEY"},
		},
		{
			name:        "gemini missing",
			env:         map[string]string{"PINECONE_API_KEY": "p"},
			wantMissing: []string{"GEMINI_API_KEY"},
		},
		{
			name:        "pinecone missing",
			env:         map[string]string{"GEMINI_API_KEY": "g"},
			wantMissing: []string{"PINECONE_API_KEY"},
		},
		{
			name:        "openai provider needs openai key",
			env:         map[string]string{"EMBEDDING_PROVIDER": "openai", "GEMINI_API_KEY": "g", "PINECONE_API_KEY": "p"},
			wantMissing: []string{"OPENAI_API_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("Load() error = %v, want ErrMissingCredentials", err)
			}
			for _, key := range tt.wantMissing {
				if !strings.Contains(err.Error(), key) {
					t.Errorf("error %q should name %s", err, key)
				}
			}
		})
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GeminiAPIKey:      "g",
			PineconeAPIKey:    "p",
			EmbeddingProvider: ProviderGemini,
			VectorDimension:   768,
			IndexName:         DefaultIndexName,
			Metric:            DefaultMetric,
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() on valid config failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown provider", func(c *Config) { c.EmbeddingProvider = "cohere" }},
		{"zero dimension", func(c *Config) { c.VectorDimension = 0 }},
		{"unknown metric", func(c *Config) { c.Metric = "manhattan" }},
		{"empty index name", func(c *Config) { c.IndexName = "" }},
		{"negative ready timeout", func(c *Config) { c.ReadyTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if errors.Is(err, ErrMissingCredentials) {
				t.Errorf("Validate() = %v, should not be a credentials error", err)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		defaultVal  bool
		want        bool
		wantInvalid bool
	}{
		{"empty uses default true", "", true, true, false},
		{"empty uses default false", "", false, false, false},
		{"true", "true", false, true, false},
		{"upper case TRUE", "TRUE", false, true, false},
		{"1", "1", false, true, false},
		{"false", "false", true, false, false},
		{"0", "0", true, false, false},
		{"unparseable keeps default", "yes", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			env := &envParser{}
			got := env.getEnvBool("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
			if gotInvalid := len(env.invalid) > 0; gotInvalid != tt.wantInvalid {
				t.Errorf("invalid = %v, want rejected=%v", env.invalid, tt.wantInvalid)
			}
		})
	}
}

func TestLoad_FailFastUpperCase(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("PINECONE_API_KEY", "pinecone-key")
	t.Setenv("SEED_FAIL_FAST", "TRUE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.FailFast {
		t.Error("SEED_FAIL_FAST=TRUE should enable fail-fast")
	}
}

func TestLoad_UnparseableValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SEED_FAIL_FAST", "yes"},
		{"PINECONE_CREATE_ON_LOOKUP_ERROR", "on"},
		{"PINECONE_READY_TIMEOUT", "30"},
		{"SEED_REQUEST_TIMEOUT", "soon"},
		{"VECTOR_DIMENSION", "768d"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GEMINI_API_KEY", "gemini-key")
			t.Setenv("PINECONE_API_KEY", "pinecone-key")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("Load() error = %v, want ErrInvalidValue", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q should name %s", err, tt.key)
			}
		})
	}
}

func TestLoad_MissingCredentialsReportedBeforeInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEED_FAIL_FAST", "yes")

	_, err := Load()
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Load() error = %v, want ErrMissingCredentials", err)
	}
}
