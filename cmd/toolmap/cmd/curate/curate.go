// Package curate provides the gold reconciliation command.
package curate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/cmd/cmdutil"
	"github.com/agentstation/toolmap/internal/pipeline"
)

// NewCommand creates the curate command.
func NewCommand(app application.Application) *cobra.Command {
	var provenance bool

	cmd := &cobra.Command{
		Use:     "curate",
		Aliases: []string{"gold"},
		GroupID: "pipeline",
		Short:   "Deduplicate silver records into the gold catalog",
		Long: `Curate groups silver records by canonical URL (or domain and
name when a record has no URL) and merges each group into one gold
tool, written to <data-dir>/gold/tools.parquet.`,
		Example: `  toolmap curate
  toolmap curate --provenance`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Pipeline(pipeline.WithProvenance(provenance))
			if err != nil {
				return err
			}
			result, err := p.Gold(cmd.Context())
			if err != nil {
				return err
			}
			return cmdutil.PrintStage(cmd, app.OutputFormat(), result)
		},
	}

	cmd.Flags().BoolVar(&provenance, "provenance", false, "write gold/provenance.yaml recording the source of each field")
	return cmd
}
