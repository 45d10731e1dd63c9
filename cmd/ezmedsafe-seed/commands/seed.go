// ABOUTME: Seed command embeds the record set and upserts it into Pinecone
// ABOUTME: Creates the index on first use; each run appends a fresh batch
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ezmedsafe/data-prep/internal/config"
	"github.com/ezmedsafe/data-prep/internal/ingest"
	"github.com/ezmedsafe/data-prep/internal/logging"
)

var (
	seedRecordsFile string
	seedFailFast    bool
	seedIndexName   string
	seedNamespace   string
)

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Embed the records and upsert them into the RAG index",
		Long: `Embed every record and write the vectors to Pinecone in one batch.

The index is created (serverless, 768 dimensions, cosine) when it does
not exist yet. Every run generates fresh vector IDs, so running twice
stores every passage twice.

A failed final upsert is reported but does not fail the command unless
--fail-fast (or SEED_FAIL_FAST=true) is set.

Examples:
  ezmedsafe-seed seed
  ezmedsafe-seed seed --namespace staging
  ezmedsafe-seed seed --records extra.yaml --fail-fast`,
		RunE: runSeed,
	}

	cmd.Flags().StringVar(&seedRecordsFile, "records", "", "JSON or YAML file of records (default: bundled set)")
	cmd.Flags().BoolVar(&seedFailFast, "fail-fast", false, "Fail when the final upsert fails")
	cmd.Flags().StringVar(&seedIndexName, "index", "", "Pinecone index name (overrides PINECONE_INDEX_NAME)")
	cmd.Flags().StringVar(&seedNamespace, "namespace", "", "Pinecone namespace (overrides PINECONE_NAMESPACE)")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}

	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	applySeedFlags(cmd, cfg)

	recs, err := loadRecords(cfg.RecordsFile)
	if err != nil {
		return err
	}

	logger := logging.New(verbose, quiet)
	defer func() { _ = logger.Sync() }()

	runner, err := newRunner(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	report, err := runner.Run(cmd.Context(), recs)
	if err != nil {
		return err
	}

	return printReport(cmd, cfg, report)
}

// applySeedFlags lets explicitly set flags win over the environment
func applySeedFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("records") {
		cfg.RecordsFile = seedRecordsFile
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = seedFailFast
	}
	if flags.Changed("index") && seedIndexName != "" {
		cfg.IndexName = seedIndexName
	}
	if flags.Changed("namespace") {
		cfg.Namespace = seedNamespace
	}
}

type seedSummary struct {
	Index        string `json:"index"`
	Namespace    string `json:"namespace,omitempty"`
	IndexCreated bool   `json:"index_created"`
	Embedded     int    `json:"embedded"`
	Upserted     int    `json:"upserted"`
	UpsertError  string `json:"upsert_error,omitempty"`
}

func printReport(cmd *cobra.Command, cfg *config.Config, report *ingest.Report) error {
	if jsonOutput() {
		summary := seedSummary{
			Index:        report.IndexName,
			Namespace:    cfg.Namespace,
			IndexCreated: report.IndexCreated,
			Embedded:     report.Embedded,
			Upserted:     report.Upserted,
		}
		if report.UpsertErr != nil {
			summary.UpsertError = report.UpsertErr.Error()
		}
		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		if report.IndexCreated {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created Pinecone index '%s' with dimension %d\n", report.IndexName, cfg.VectorDimension)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Using existing Pinecone index '%s'\n", report.IndexName)
		}
	}

	if report.UpsertErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ Error upserting to Pinecone: %v\n", report.UpsertErr)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Successfully upserted %d vectors to Pinecone\n", report.Upserted)
	}
	return nil
}
