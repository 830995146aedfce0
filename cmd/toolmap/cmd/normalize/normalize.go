// Package normalize provides the silver normalization command.
package normalize

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/cmd/cmdutil"
)

// NewCommand creates the normalize command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "normalize",
		GroupID: "pipeline",
		Short:   "Normalize bronze tables into silver records",
		Long: `Normalize maps every bronze table onto the canonical schema:
column aliases are resolved, URLs canonicalized, booleans and lists
parsed and categories mapped onto the taxonomy. Rows without a name are
dropped and counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Pipeline()
			if err != nil {
				return err
			}
			result, err := p.Silver(cmd.Context())
			if err != nil {
				return err
			}
			return cmdutil.PrintStage(cmd, app.OutputFormat(), result)
		},
	}
}
