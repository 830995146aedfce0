// Package report provides the Markdown catalog command.
package report

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/artifacts"
	catalog "github.com/agentstation/toolmap/internal/report"
	"github.com/agentstation/toolmap/pkg/constants"
)

// NewCommand creates the report command.
func NewCommand(app application.Application) *cobra.Command {
	var title, out string

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "catalog",
		Short:   "Render the gold catalog as Markdown",
		Long: `Report renders gold/tools.parquet as a Markdown document with a
category summary table and one section per category.`,
		Example: `  toolmap report > CATALOG.md
  toolmap report --title "Team AI Toolbox" --out docs/tools.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := artifacts.New(app.DataDir()).Path(constants.StageGold, constants.GoldToolsFile)
			tools, err := artifacts.ReadGold(path)
			if err != nil {
				return err
			}

			r := catalog.New(catalog.WithTitle(title))
			if out == "" || out == "-" {
				return r.Write(cmd.OutOrStdout(), tools)
			}
			if err := artifacts.WriteAtomic(out, func(w io.Writer) error {
				return r.Write(w, tools)
			}); err != nil {
				return err
			}
			app.Logger().Info().Str("path", out).Int("tools", len(tools)).Msg("Wrote catalog report")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", catalog.DefaultTitle, "document title")
	cmd.Flags().StringVar(&out, "out", "", "write to this file instead of stdout")
	return cmd
}
