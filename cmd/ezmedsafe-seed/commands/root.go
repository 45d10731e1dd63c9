// ABOUTME: Root command and global flags for the seeding CLI
// ABOUTME: Wires subcommands and runs them under a signal-aware context
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗███████╗███╗   ███╗███████╗██████╗ ███████╗ █████╗ ███████╗███████╗
██╔════╝╚══███╔╝████╗ ████║██╔════╝██╔══██╗██╔════╝██╔══██╗██╔════╝██╔════╝
█████╗    ███╔╝ ██╔████╔██║█████╗  ██║  ██║███████╗███████║█████╗  █████╗
██╔══╝   ███╔╝  ██║╚██╔╝██║██╔══╝  ██║  ██║╚════██║██╔══██║██╔══╝  ██╔══╝
███████╗███████╗██║ ╚═╝ ██║███████╗██████╔╝███████║██║  ██║██║     ███████╗
╚══════╝╚══════╝╚═╝     ╚═╝╚══════╝╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝     ╚══════╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ezmedsafe-seed",
		Short: "Seed the EzMedSafe RAG index with drug-interaction passages",
		Long: banner + `

Embeds a curated set of drug-mechanism and drug-drug interaction (DDI)
passages and writes them, with their metadata, into a Pinecone index
for retrieval-augmented generation.

Configuration comes from the environment (a .env file is loaded if present):
  GEMINI_API_KEY        Gemini embedding credential (required)
  PINECONE_API_KEY      Pinecone credential (required)
  PINECONE_INDEX_NAME   Target index (default: ezmedsafe-rag-index)`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewSeedCmd(),
		NewRecordsCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command; SIGINT and SIGTERM cancel in-flight remote calls
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// jsonOutput reports whether command output should be JSON
func jsonOutput() bool {
	return outputFormat == "json"
}

func validateFormat() error {
	switch outputFormat {
	case "", "auto", "text", "json":
		return nil
	default:
		return fmt.Errorf("--format must be auto, text or json, got %q", outputFormat)
	}
}
