package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/toolmap/internal/cmd/globals"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Pipeline
	DataDir      string
	CSVGlob      string
	EUDKRawURL   string
	GitHubToken  string
	TaxonomyFile string
	AliasesFile  string

	// Database and read API
	DatabaseURL    string
	AllowedOrigins string
	Host           string
	Port           int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env and .env.local files
// 4. Config file (configFile, or .toolmap.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".toolmap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config must exist and parse.
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		DataDir:      v.GetString("data_dir"),
		CSVGlob:      v.GetString("csv_glob"),
		EUDKRawURL:   v.GetString("eudk_raw_url"),
		GitHubToken:  v.GetString("github_token"),
		TaxonomyFile: v.GetString("taxonomy_file"),
		AliasesFile:  v.GetString("aliases_file"),

		DatabaseURL:    v.GetString("database_url"),
		AllowedOrigins: v.GetString("allowed_origins"),
		Host:           v.GetString("host"),
		Port:           v.GetInt("port"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", constants.DefaultDataDir)
	v.SetDefault("csv_glob", constants.DefaultCSVGlob)
	v.SetDefault("eudk_raw_url", constants.DefaultEUDKRawURL)
	v.SetDefault("allowed_origins", constants.DefaultAllowedOrigins)
	v.SetDefault("host", constants.DefaultHost)
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	// Bound so AutomaticEnv picks them up without a default value.
	for _, key := range []string{"github_token", "taxonomy_file", "aliases_file", "database_url", "log_level", "format", "no_color"} {
		_ = v.BindEnv(key)
	}
}

// UpdateFromFlags applies parsed persistent flags. Flags win over config
// file and environment values when set.
func (c *Config) UpdateFromFlags(flags *globals.Flags) {
	if flags == nil {
		return
	}
	c.Verbose = c.Verbose || flags.Verbose
	c.Quiet = c.Quiet || flags.Quiet
	c.NoColor = c.NoColor || flags.NoColor
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.DataDir != "" {
		c.DataDir = flags.DataDir
	}
}

// loadEnvFiles loads .env files; .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
