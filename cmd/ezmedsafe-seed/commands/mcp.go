// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents seed and inspect the RAG index via stdio
package commands

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ezmedsafe/data-prep/internal/config"
	"github.com/ezmedsafe/data-prep/internal/ingest"
	"github.com/ezmedsafe/data-prep/internal/logging"
	"github.com/ezmedsafe/data-prep/internal/mcp"
	"github.com/ezmedsafe/data-prep/internal/records"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the seeder as an MCP (Model Context Protocol) server on stdio,
exposing the seed_index and list_records tools to LLM agents.

Credentials are read from the environment exactly as for the seed command.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by an MCP client)
  ezmedsafe-seed mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "ezmedsafe-seed": {
  #       "command": "ezmedsafe-seed",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	recs, err := loadRecords(cfg.RecordsFile)
	if err != nil {
		return err
	}

	logger := logging.New(verbose, quiet)
	defer func() { _ = logger.Sync() }()

	server := mcpserver.NewMCPServer(
		"EzMedSafe RAG Seeder",
		versionInfo.Version,
		mcpserver.WithToolCapabilities(true),
	)
	mcp.RegisterTools(server, seedFunc(cfg, recs, logger), recs)

	logger.Info("MCP server starting on stdio", zap.String("index", cfg.IndexName))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-cmd.Context().Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}

// seedFunc binds the pipeline to a configuration; each call builds fresh clients
func seedFunc(cfg *config.Config, recs []records.Record, logger *zap.Logger) mcp.SeedFunc {
	return func(ctx context.Context, failFast bool) (*ingest.Report, error) {
		runCfg := *cfg
		runCfg.FailFast = failFast

		runner, err := newRunner(ctx, &runCfg, logger)
		if err != nil {
			return nil, err
		}
		return runner.Run(ctx, recs)
	}
}
