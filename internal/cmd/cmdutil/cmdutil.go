// Package cmdutil holds helpers shared by toolmap commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/internal/cmd/output"
	"github.com/agentstation/toolmap/internal/pipeline"
)

// Print writes data to the command's stdout in format. Table formats use
// table when it is non-nil.
func Print(cmd *cobra.Command, format string, data any, table *output.Data) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), output.DetectFormat(string(f)), data, table)
}

// PrintStages writes stage results.
func PrintStages(cmd *cobra.Command, format string, results ...pipeline.StageResult) error {
	table := output.StagesTable(results)
	return Print(cmd, format, results, &table)
}

// PrintStage writes a single stage result.
func PrintStage(cmd *cobra.Command, format string, result *pipeline.StageResult) error {
	return PrintStages(cmd, format, *result)
}
