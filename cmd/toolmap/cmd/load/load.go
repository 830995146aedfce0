// Package load provides the database load command.
package load

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/cmd/cmdutil"
	"github.com/agentstation/toolmap/internal/cmd/output"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// NewCommand creates the load command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "load",
		GroupID: "pipeline",
		Short:   "Load the gold catalog into Postgres",
		Long: `Load merges gold/tools.parquet into the tools table of
database_url. Tools with a URL are upserted on it; tools without one
update the row with the same name and domain or are inserted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithStage(cmd.Context(), constants.StageLoad)

			path := artifacts.New(app.DataDir()).Path(constants.StageGold, constants.GoldToolsFile)
			tools, err := artifacts.ReadGold(path)
			if err != nil {
				return errors.NewStageError(constants.StageLoad, path, err)
			}

			db, err := app.Database(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := db.Load(ctx, tools)
			if err != nil {
				return errors.NewStageError(constants.StageLoad, path, err)
			}
			table := output.LoadTable(result)
			return cmdutil.Print(cmd, app.OutputFormat(), result, &table)
		},
	}
}
