// Package inspect provides commands that print pipeline artifacts.
package inspect

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/cmd/cmdutil"
	"github.com/agentstation/toolmap/internal/cmd/output"
	"github.com/agentstation/toolmap/internal/pipeline"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/differ"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/provenance"
	"github.com/agentstation/toolmap/pkg/records"
)

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect",
		GroupID: "catalog",
		Short:   "Print pipeline artifacts",
		Long: `Inspect prints the artifacts under the data directory as a table,
JSON or YAML (see --format). Use the wide format to show every column.`,
	}

	cmd.AddCommand(newBronzeCommand(app))
	cmd.AddCommand(newSilverCommand(app))
	cmd.AddCommand(newGoldCommand(app))
	cmd.AddCommand(newManifestCommand(app))
	cmd.AddCommand(newProvenanceCommand(app))
	cmd.AddCommand(newChangesCommand(app))
	return cmd
}

func isWide(app application.Application) bool {
	return output.Format(strings.ToLower(app.OutputFormat())) == output.FormatWide
}

func newBronzeCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "bronze <table>",
		Short: "Print a raw bronze table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := artifacts.New(app.DataDir()).TablePath(constants.StageBronze, args[0])
			table, err := artifacts.ReadTable(path)
			if err != nil {
				return err
			}

			data := output.Data{Headers: table.Columns}
			rows := make([]map[string]any, 0, len(table.Rows))
			for _, raw := range table.Rows {
				row := make([]string, len(table.Columns))
				obj := make(map[string]any, len(table.Columns))
				for i, col := range table.Columns {
					v := raw.Get(col)
					row[i] = v.Text()
					switch {
					case v.IsNull():
						obj[col] = nil
					case v.Kind() == records.KindList:
						obj[col], _ = v.Items()
					default:
						obj[col] = v.Text()
					}
				}
				data.Rows = append(data.Rows, row)
				rows = append(rows, obj)
			}
			return cmdutil.Print(cmd, app.OutputFormat(), rows, &data)
		},
	}
}

func newSilverCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "silver [table...]",
		Short: "Print silver records, from every table unless named",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := artifacts.New(app.DataDir())

			var paths []string
			if len(args) == 0 {
				var err error
				if paths, err = store.List(constants.StageSilver); err != nil {
					return err
				}
				if len(paths) == 0 {
					return errors.NoInput(constants.StageSilver, store.Dir(constants.StageSilver))
				}
			}
			for _, name := range args {
				paths = append(paths, store.TablePath(constants.StageSilver, name))
			}

			recs := []records.Silver{}
			for _, path := range paths {
				batch, err := artifacts.ReadSilver(path)
				if err != nil {
					return err
				}
				recs = append(recs, batch...)
			}
			table := output.SilverTable(recs, isWide(app))
			return cmdutil.Print(cmd, app.OutputFormat(), recs, &table)
		},
	}
}

func newGoldCommand(app application.Application) *cobra.Command {
	var category string
	var limit int

	cmd := &cobra.Command{
		Use:   "gold",
		Short: "Print the curated gold catalog",
		Example: `  toolmap inspect gold --category writing
  toolmap inspect gold -o json --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := artifacts.New(app.DataDir()).Path(constants.StageGold, constants.GoldToolsFile)
			tools, err := artifacts.ReadGold(path)
			if err != nil {
				return err
			}
			tools = filterGold(tools, category, limit)
			table := output.GoldTable(tools, isWide(app))
			return cmdutil.Print(cmd, app.OutputFormat(), tools, &table)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only tools in this category")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of tools (0 for all)")
	return cmd
}

func filterGold(tools []records.Gold, category string, limit int) []records.Gold {
	out := make([]records.Gold, 0, len(tools))
	for _, t := range tools {
		if category != "" && !slices.Contains(t.Categories, strings.ToLower(category)) {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func newManifestCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the manifest of the last pipeline run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := pipeline.New(artifacts.New(app.DataDir()))
			m, err := p.ReadManifest()
			if err != nil {
				return err
			}
			table := output.StagesTable(m.Stages)
			return cmdutil.Print(cmd, app.OutputFormat(), m, &table)
		},
	}
}

func newProvenanceCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "provenance [key]",
		Short: "Print merge provenance written by curate --provenance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := artifacts.New(app.DataDir()).Path(constants.StageGold, constants.GoldProvenanceFile)
			f, err := provenance.Load(path)
			if err != nil {
				return err
			}
			if f == nil {
				return errors.NewNotFoundError("artifact", path)
			}

			recs := f.Records
			if len(args) == 1 {
				rec, ok := f.Map()[args[0]]
				if !ok {
					return errors.NewNotFoundError("provenance record", args[0])
				}
				recs = []provenance.Record{*rec}
			}
			table := provenanceTable(recs)
			return cmdutil.Print(cmd, app.OutputFormat(), recs, &table)
		},
	}
}

func provenanceTable(recs []provenance.Record) output.Data {
	data := output.Data{Headers: []string{"Key", "Field", "Source", "Policy"}}
	for _, rec := range recs {
		fields := make([]string, 0, len(rec.Fields))
		for f := range rec.Fields {
			fields = append(fields, f)
		}
		slices.Sort(fields)
		for _, f := range fields {
			p := rec.Fields[f]
			data.Rows = append(data.Rows, []string{rec.Key, f, p.Source, p.Policy})
		}
	}
	return data
}

func newChangesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "changes",
		Short: "Print the tools added, updated or removed by the last curate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := artifacts.New(app.DataDir()).Path(constants.StageGold, constants.GoldChangesFile)
			var cs differ.Changeset
			if err := artifacts.ReadYAML(path, &cs); err != nil {
				return err
			}
			table := changesTable(&cs)
			return cmdutil.Print(cmd, app.OutputFormat(), cs, &table)
		},
	}
}

func changesTable(cs *differ.Changeset) output.Data {
	data := output.Data{Headers: []string{"Change", "Name", "Key", "Fields"}}
	for _, t := range cs.Added {
		data.Rows = append(data.Rows, []string{string(differ.ChangeTypeAdd), t.Name, t.Key(), "-"})
	}
	for _, u := range cs.Updated {
		fields := make([]string, 0, len(u.Changes))
		for _, fc := range u.Changes {
			fields = append(fields, fc.Field)
		}
		data.Rows = append(data.Rows, []string{string(differ.ChangeTypeUpdate), u.New.Name, u.Key, strings.Join(fields, ", ")})
	}
	for _, t := range cs.Removed {
		data.Rows = append(data.Rows, []string{string(differ.ChangeTypeRemove), t.Name, t.Key(), "-"})
	}
	return data
}
