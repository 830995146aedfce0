// Package run provides the full pipeline command.
package run

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/cmd/cmdutil"
	"github.com/agentstation/toolmap/internal/pipeline"
)

// NewCommand creates the run command.
func NewCommand(app application.Application) *cobra.Command {
	var provenance bool

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "pipeline",
		Short:   "Run ingest, normalize, curate and load in order",
		Long: `Run executes every stage of the nightly pipeline and writes a
run manifest to <data-dir>/gold/manifest.yaml. The load stage is skipped
when no database_url is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := app.Logger()

			opts := []pipeline.Option{pipeline.WithProvenance(provenance)}
			if app.HasDatabase() {
				db, err := app.Database(ctx)
				if err != nil {
					return err
				}
				defer db.Close()
				opts = append(opts, pipeline.WithLoader(db))
			} else {
				logger.Warn().Msg("database_url is not set, the load stage will be skipped")
			}

			p, err := app.Pipeline(opts...)
			if err != nil {
				return err
			}
			manifest, err := p.Run(ctx)
			if err != nil {
				if len(manifest.Stages) > 0 {
					_ = cmdutil.PrintStages(cmd, app.OutputFormat(), manifest.Stages...)
				}
				return err
			}
			return cmdutil.PrintStages(cmd, app.OutputFormat(), manifest.Stages...)
		},
	}

	cmd.Flags().BoolVar(&provenance, "provenance", false, "write gold/provenance.yaml recording the source of each field")
	return cmd
}
