// Package ingest provides the bronze ingestion commands.
package ingest

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/application"
	"github.com/agentstation/toolmap/internal/cmd/cmdutil"
	"github.com/agentstation/toolmap/internal/pipeline"
	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/internal/sources/csvsource"
	"github.com/agentstation/toolmap/internal/sources/markdown"
)

// NewCommand creates the ingest command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingest",
		GroupID: "pipeline",
		Short:   "Ingest raw sources into bronze tables",
		Long: `Ingest reads a source exactly as found and writes one bronze
parquet table per input under <data-dir>/bronze.

Without a subcommand every configured source is ingested; a failing
source is reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srcs, err := app.Sources()
			if err != nil {
				return err
			}
			return ingest(cmd, app, srcs...)
		},
	}

	cmd.AddCommand(newCSVCommand(app))
	cmd.AddCommand(newMarkdownCommand(app))
	return cmd
}

func newCSVCommand(app application.Application) *cobra.Command {
	var dir, glob string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Ingest CSV exports from <data-dir>/sources",
		Example: `  toolmap ingest csv
  toolmap ingest csv --glob "futurepedia*.csv,*_tools.csv"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := source(app, sources.CSVID)
			if err != nil {
				return err
			}
			if dir != "" || glob != "" {
				var opts []csvsource.Option
				if dir != "" {
					opts = append(opts, csvsource.WithDir(dir))
				}
				if glob != "" {
					opts = append(opts, csvsource.WithGlob(glob))
				}
				src = csvsource.New(append(baseCSV(src), opts...)...)
			}
			return ingest(cmd, app, src)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the CSV files")
	cmd.Flags().StringVar(&glob, "glob", "", "file pattern, a comma list of globs or regexes (overrides csv_glob)")
	return cmd
}

func newMarkdownCommand(app application.Application) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:     "markdown",
		Aliases: []string{"md"},
		Short:   "Ingest the awesome-ai-tools Markdown list",
		Example: `  toolmap ingest markdown
  toolmap ingest markdown --url ./README.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src sources.Source
			if url != "" {
				src = markdown.New(markdown.WithURL(url))
			} else {
				var err error
				if src, err = source(app, sources.MarkdownID); err != nil {
					return err
				}
			}
			return ingest(cmd, app, src)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "README URL or local path (overrides eudk_raw_url)")
	return cmd
}

func ingest(cmd *cobra.Command, app application.Application, srcs ...sources.Source) error {
	p, err := app.Pipeline(pipeline.WithSources(srcs...))
	if err != nil {
		return err
	}
	result, err := p.Bronze(cmd.Context())
	if err != nil {
		return err
	}
	return cmdutil.PrintStage(cmd, app.OutputFormat(), result)
}

func source(app application.Application, id sources.ID) (sources.Source, error) {
	srcs, err := app.Sources(id)
	if err != nil {
		return nil, err
	}
	return srcs[0], nil
}

// baseCSV carries the configured directory and glob into an overridden
// csv source.
func baseCSV(src sources.Source) []csvsource.Option {
	c, ok := src.(*csvsource.Source)
	if !ok {
		return nil
	}
	return []csvsource.Option{csvsource.WithDir(c.Dir()), csvsource.WithGlob(c.Glob())}
}
