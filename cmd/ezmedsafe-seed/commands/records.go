// ABOUTME: CLI command to show the records a seed run would write
// ABOUTME: Reads the bundled set or a file; makes no remote calls
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	recordsFile string
)

// NewRecordsCmd creates the records command
func NewRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List the drug-interaction records",
		Long: `List the passages and metadata that the seed command embeds.

Examples:
  ezmedsafe-seed records
  ezmedsafe-seed records --file extra.yaml
  ezmedsafe-seed records --format json`,
		RunE: runRecords,
	}

	cmd.Flags().StringVar(&recordsFile, "file", "", "JSON or YAML file of records (default: bundled set)")

	return cmd
}

func runRecords(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}

	recs, err := loadRecords(recordsFile)
	if err != nil {
		return err
	}

	if jsonOutput() {
		jsonData, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tTYPE\tTEXT\tMETADATA\n")
	fmt.Fprintf(w, "-\t----\t----\t--------\n")

	for i, rec := range recs {
		kind := rec.Metadata["interaction_type"]
		if kind == "" {
			kind = rec.Metadata["mechanism_type"]
		}
		if kind == "" {
			kind = "-"
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i+1,
			kind,
			truncate(rec.Text, 60),
			formatMetadata(rec.Metadata))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d record(s)\n", len(recs))
	}

	return nil
}
