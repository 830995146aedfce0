// Package globals provides the persistent flags shared by every command.
package globals

import "github.com/spf13/cobra"

// Flags holds global common flags across all commands.
type Flags struct {
	ConfigFile string
	Format     string
	Quiet      bool
	Verbose    bool
	NoColor    bool
	LogLevel   string
	DataDir    string
}

// AddFlags adds the persistent flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.ConfigFile, "config", "",
		"config file (default is $HOME/.toolmap.yaml)")
	pf.StringVarP(&flags.Format, "format", "o", "",
		"output format: table, wide, json, yaml")
	// --output is kept as a hidden alias.
	pf.StringVar(&flags.Format, "output", "", "")
	_ = pf.MarkHidden("output")

	pf.BoolVarP(&flags.Quiet, "quiet", "q", false,
		"minimal output (shortcut for --log-level=warn)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false,
		"verbose output (shortcut for --log-level=debug)")
	pf.BoolVar(&flags.NoColor, "no-color", false,
		"disable colored output")
	pf.StringVar(&flags.LogLevel, "log-level", "",
		"log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVar(&flags.DataDir, "data-dir", "",
		"data directory holding bronze, silver and gold artifacts")

	return flags
}

// Parse extracts global flags from the command hierarchy.
func Parse(cmd *cobra.Command) *Flags {
	root := cmd.Root()
	pf := root.PersistentFlags()

	configFile, _ := pf.GetString("config")
	format, _ := pf.GetString("format")
	quiet, _ := pf.GetBool("quiet")
	verbose, _ := pf.GetBool("verbose")
	noColor, _ := pf.GetBool("no-color")
	logLevel, _ := pf.GetString("log-level")
	dataDir, _ := pf.GetString("data-dir")

	return &Flags{
		ConfigFile: configFile,
		Format:     format,
		Quiet:      quiet,
		Verbose:    verbose,
		NoColor:    noColor,
		LogLevel:   logLevel,
		DataDir:    dataDir,
	}
}
