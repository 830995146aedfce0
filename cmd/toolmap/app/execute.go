package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/internal/cmd/globals"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
)

// Execute runs the toolmap CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	var flags *globals.Flags

	rootCmd := &cobra.Command{
		Use:     "toolmap",
		Short:   "AI tool catalog pipeline and API",
		Version: a.version,
		Long: `Toolmap curates a catalog of AI tools from spreadsheets and
awesome-lists.

Sources are ingested as-is into bronze tables, normalized into a
canonical silver schema, deduplicated into a gold catalog, loaded into
Postgres and served through a small read API.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "pipeline", Title: "Pipeline Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "catalog", Title: "Catalog Commands:"})

	flags = globals.AddFlags(rootCmd)
	rootCmd.SetVersionTemplate("toolmap {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand reloads the config when --config is given, applies the
// persistent flags, rebuilds the logger and attaches it to the command
// context.
func (a *App) setupCommand(cmd *cobra.Command, flags *globals.Flags) error {
	if flags.ConfigFile != "" {
		config, err := LoadConfig(flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(flags)

	logger := NewLogger(a.config)
	a.logger = &logger

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, a.logger))
	return nil
}

// Exit codes returned by the toolmap binary.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInvalid = 2
	ExitNoInput = 3
)

// ExitOnError prints err, with a hint when one applies, and exits with the
// matching exit code.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
	if hint := errorHint(err); hint != "" {
		_, _ = os.Stderr.WriteString("Hint: " + hint + "\n")
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsNoInput(err):
		return ExitNoInput
	case errors.IsValidationError(err):
		return ExitInvalid
	default:
		return ExitFailure
	}
}

// errorHint suggests the command that produces a missing stage input.
func errorHint(err error) string {
	var stageErr *errors.StageError
	if !errors.IsNoInput(err) || !errors.As(err, &stageErr) {
		return ""
	}
	switch stageErr.Stage {
	case constants.StageBronze:
		return "add CSV files under <data-dir>/sources or set eudk_raw_url"
	case constants.StageSilver:
		return "run 'toolmap ingest' first"
	case constants.StageGold:
		return "run 'toolmap normalize' first"
	default:
		return ""
	}
}
