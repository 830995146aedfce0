package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/toolmap/cmd/curate"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/ingest"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/inspect"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/load"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/normalize"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/report"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/run"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/serve"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Pipeline commands
	rootCmd.AddCommand(ingest.NewCommand(a))
	rootCmd.AddCommand(normalize.NewCommand(a))
	rootCmd.AddCommand(curate.NewCommand(a))
	rootCmd.AddCommand(load.NewCommand(a))
	rootCmd.AddCommand(run.NewCommand(a))

	// Catalog commands
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))
	rootCmd.AddCommand(report.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}
